// Package handler implements the HTTP endpoints. Handlers depend on
// the narrow store interfaces below rather than on concrete
// repositories, so tests can swap in in-memory fakes; the *Repo types
// in internal/repository are the production implementations.
package handler

import (
	"context"

	"github.com/mdd-social/mdd-api/internal/model"
	"github.com/mdd-social/mdd-api/internal/queue"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, userName, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Update(ctx context.Context, id uint64, userName, email, newHash string) error
}

// SubjectStore exposes read access to subjects.
type SubjectStore interface {
	GetByID(ctx context.Context, id uint64) (model.Subject, error)
	ListAll(ctx context.Context) ([]model.Subject, error)
}

// SubscriptionStore manages the user/subject relation and the
// subject listing derived from it.
type SubscriptionStore interface {
	Create(ctx context.Context, userID, subjectID uint64) error
	Exists(ctx context.Context, userID, subjectID uint64) (bool, error)
	Delete(ctx context.Context, userID, subjectID uint64) error
	ListSubjectsFor(ctx context.Context, userID uint64) ([]model.Subject, error)
}

// PostStore provides post persistence and the subscription-scoped
// feed query.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id uint64) (model.Post, error)
	ListAll(ctx context.Context, sortBy, order string) ([]model.Post, error)
	ListForSubscriber(ctx context.Context, userID uint64) ([]model.Post, error)
}

// CommentStore provides comment persistence.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
}

// EventPublisher pushes domain events to the message broker. Publish
// failures must never fail the request that produced the event.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, ev queue.PostCreatedEvent) error
}
