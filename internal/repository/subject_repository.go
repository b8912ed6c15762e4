package repository

import (
	"context"
	"database/sql"

	"github.com/mdd-social/mdd-api/internal/model"
)

// SubjectRepo provides read access to the 'subjects' table. Subjects
// are seeded out of band; the API never writes them.
type SubjectRepo struct{ DB *sql.DB }

func NewSubjectRepo(db *sql.DB) *SubjectRepo { return &SubjectRepo{DB: db} }

// GetByID fetches a subject by id. Returns ErrNotFound when absent.
func (r *SubjectRepo) GetByID(ctx context.Context, id uint64) (model.Subject, error) {
	var s model.Subject
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,description,created_at FROM subjects WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Title, &s.Description, &s.Date)
	if err == sql.ErrNoRows {
		return model.Subject{}, ErrNotFound
	}
	return s, err
}

// ListAll returns every subject ordered by title.
func (r *SubjectRepo) ListAll(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,description,created_at FROM subjects ORDER BY title")
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
