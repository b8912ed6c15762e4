package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mdd-social/mdd-api/internal/model"
)

// SubscriptionRepo manages the (user, subject) many-to-many relation.
// The subscriptions table carries PRIMARY KEY (user_id, subject_id),
// so the at-most-one-row-per-pair invariant holds even when two
// identical subscribe calls race: the second insert fails with a
// duplicate-key error that Create translates to ErrSubscriptionExists.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

// Create inserts the relation. ErrSubscriptionExists is returned when
// the pair is already present.
func (r *SubscriptionRepo) Create(ctx context.Context, userID, subjectID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, subject_id) VALUES (?,?)",
		userID, subjectID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSubscriptionExists
		}
		return err
	}
	return nil
}

// Exists reports whether the pair is present.
func (r *SubscriptionRepo) Exists(ctx context.Context, userID, subjectID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM subscriptions WHERE user_id=? AND subject_id=? LIMIT 1",
		userID, subjectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the relation. ErrNotFound is returned when no row
// existed for the pair; the ledger is left unchanged in that case.
func (r *SubscriptionRepo) Delete(ctx context.Context, userID, subjectID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE user_id=? AND subject_id=?",
		userID, subjectID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSubjectsFor returns the subjects the user is subscribed to.
// Order is not significant; titles are used for stable output.
func (r *SubscriptionRepo) ListSubjectsFor(ctx context.Context, userID uint64) ([]model.Subject, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.title, s.description, s.created_at
		   FROM subjects s
		   JOIN subscriptions sub ON sub.subject_id = s.id
		  WHERE sub.user_id = ?
		  ORDER BY s.title`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]model.Subject, 0)
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Date); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
