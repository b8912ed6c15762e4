package handler

// In-memory store fakes backing the handler tests. They mirror the
// repository contracts, including the sentinel errors and the
// at-most-one-row invariant on subscriptions.

import (
	"context"
	"sort"

	"github.com/mdd-social/mdd-api/internal/model"
	"github.com/mdd-social/mdd-api/internal/queue"
	"github.com/mdd-social/mdd-api/internal/repository"
	"github.com/mdd-social/mdd-api/internal/utils"
)

type fakeUsers struct {
	byID   map[uint64]model.User
	nextID uint64
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[uint64]model.User{}} }

func (f *fakeUsers) add(userName, email, password string) model.User {
	hash, _ := utils.HashPassword(password, 4)
	f.nextID++
	u := model.User{ID: f.nextID, UserName: userName, Email: email, PasswordHash: hash}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) Create(_ context.Context, userName, email, password string, cost int) (uint64, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.byID[f.nextID] = model.User{ID: f.nextID, UserName: userName, Email: email, PasswordHash: hash}
	return f.nextID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, id uint64, userName, email, newHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range f.byID {
		if other.ID != id && other.Email == email {
			return repository.ErrEmailExists
		}
	}
	u.UserName, u.Email = userName, email
	if newHash != "" {
		u.PasswordHash = newHash
	}
	f.byID[id] = u
	return nil
}

type fakeSubjects struct{ byID map[uint64]model.Subject }

func newFakeSubjects(subjects ...model.Subject) *fakeSubjects {
	f := &fakeSubjects{byID: map[uint64]model.Subject{}}
	for _, s := range subjects {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSubjects) GetByID(_ context.Context, id uint64) (model.Subject, error) {
	s, ok := f.byID[id]
	if !ok {
		return model.Subject{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubjects) ListAll(_ context.Context) ([]model.Subject, error) {
	out := make([]model.Subject, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type fakeSubscriptions struct {
	rows     map[model.SubscriptionKey]bool
	subjects *fakeSubjects
}

func newFakeSubscriptions(subjects *fakeSubjects) *fakeSubscriptions {
	return &fakeSubscriptions{rows: map[model.SubscriptionKey]bool{}, subjects: subjects}
}

func (f *fakeSubscriptions) Create(_ context.Context, userID, subjectID uint64) error {
	k := model.SubscriptionKey{UserID: userID, SubjectID: subjectID}
	if f.rows[k] {
		return repository.ErrSubscriptionExists
	}
	f.rows[k] = true
	return nil
}

func (f *fakeSubscriptions) Exists(_ context.Context, userID, subjectID uint64) (bool, error) {
	return f.rows[model.SubscriptionKey{UserID: userID, SubjectID: subjectID}], nil
}

func (f *fakeSubscriptions) Delete(_ context.Context, userID, subjectID uint64) error {
	k := model.SubscriptionKey{UserID: userID, SubjectID: subjectID}
	if !f.rows[k] {
		return repository.ErrNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *fakeSubscriptions) ListSubjectsFor(_ context.Context, userID uint64) ([]model.Subject, error) {
	out := make([]model.Subject, 0)
	for k := range f.rows {
		if k.UserID == userID {
			if s, ok := f.subjects.byID[k.SubjectID]; ok {
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type fakePosts struct {
	byID   map[uint64]model.Post
	subs   *fakeSubscriptions
	nextID uint64
}

func newFakePosts(subs *fakeSubscriptions) *fakePosts {
	return &fakePosts{byID: map[uint64]model.Post{}, subs: subs}
}

func (f *fakePosts) add(p model.Post) model.Post {
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = p
	return p
}

func (f *fakePosts) Create(_ context.Context, p *model.Post) error {
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id uint64) (model.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePosts) ListAll(_ context.Context, sortBy, order string) ([]model.Post, error) {
	out := make([]model.Post, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePosts) ListForSubscriber(_ context.Context, userID uint64) ([]model.Post, error) {
	out := make([]model.Post, 0)
	for _, p := range f.byID {
		if f.subs.rows[model.SubscriptionKey{UserID: userID, SubjectID: p.SubjectID}] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeComments struct {
	byID   map[uint64]model.Comment
	nextID uint64
}

func newFakeComments() *fakeComments { return &fakeComments{byID: map[uint64]model.Comment{}} }

func (f *fakeComments) Create(_ context.Context, c *model.Comment) error {
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID uint64) ([]model.Comment, error) {
	out := make([]model.Comment, 0)
	for _, c := range f.byID {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakePublisher struct{ events []queue.PostCreatedEvent }

func (f *fakePublisher) PublishPostCreated(_ context.Context, ev queue.PostCreatedEvent) error {
	f.events = append(f.events, ev)
	return nil
}
