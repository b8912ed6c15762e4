package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mdd-social/mdd-api/internal/model"
)

// PostRepo provides CRUD operations for posts. The creation date is
// stamped by the database; callers never supply it.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// sortColumns whitelists the fields posts may be ordered by. Anything
// else falls back to the creation date.
var sortColumns = map[string]string{
	"date":  "created_at",
	"title": "title",
}

// Create inserts the post and reads the row back to populate the
// generated id and the server-side date.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (title, description, author_id, subject_id) VALUES (?,?,?,?)",
		p.Title, p.Description, p.AuthorID, p.SubjectID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM posts WHERE id=?", p.ID).Scan(&p.Date)
}

// GetByID fetches a post by id. Returns ErrNotFound when absent.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,description,created_at,author_id,subject_id FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Description, &p.Date, &p.AuthorID, &p.SubjectID)
	if err == sql.ErrNoRows {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

// ListAll returns every post ordered by the given field and direction.
// sortBy must be a whitelisted column name and order either "asc" or
// "desc"; ListAll assumes the handler has validated both.
func (r *PostRepo) ListAll(ctx context.Context, sortBy, order string) ([]model.Post, error) {
	col, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	q := fmt.Sprintf(
		"SELECT id,title,description,created_at,author_id,subject_id FROM posts ORDER BY %s %s", col, dir)
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListForSubscriber returns the posts filed under any subject the user
// is subscribed to, newest first. A user with no subscriptions gets an
// empty slice, not an error.
func (r *PostRepo) ListForSubscriber(ctx context.Context, userID uint64) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.title, p.description, p.created_at, p.author_id, p.subject_id
		   FROM posts p
		   JOIN subscriptions sub ON sub.subject_id = p.subject_id
		  WHERE sub.user_id = ?
		  ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Date, &p.AuthorID, &p.SubjectID); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
