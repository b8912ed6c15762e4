package model

import "time"

// Subscription records that a user follows a subject. The pair
// (UserID, SubjectID) is the primary key in the `subscriptions`
// table; at most one row may exist per pair and the database
// enforces that with the composite key.
//
// Fields:
//  UserID    – subscribing user.
//  SubjectID – subject being followed.
//  CreatedAt – when the subscription was taken out.
type Subscription struct {
	UserID    uint64    // subscriptions.user_id
	SubjectID uint64    // subscriptions.subject_id
	CreatedAt time.Time // subscriptions.created_at
}

// Key returns the composite identifier of the subscription. Two
// subscriptions are the same relation exactly when both fields match.
func (s Subscription) Key() SubscriptionKey {
	return SubscriptionKey{UserID: s.UserID, SubjectID: s.SubjectID}
}

// SubscriptionKey is the two-field key tuple of a subscription. It is
// comparable, so it can be used directly as a map key.
type SubscriptionKey struct {
	UserID    uint64
	SubjectID uint64
}
