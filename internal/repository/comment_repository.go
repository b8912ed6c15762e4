package repository

import (
	"context"
	"database/sql"

	"github.com/mdd-social/mdd-api/internal/model"
)

// CommentRepo provides access to the 'comments' table. Comments are
// owned by their post: the schema declares ON DELETE CASCADE on the
// post foreign key, so removing a post removes its comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts the comment and reads back the generated id and
// server-side date.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (description, author_id, post_id) VALUES (?,?,?)",
		c.Description, c.AuthorID, c.PostID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM comments WHERE id=?", c.ID).Scan(&c.Date)
}

// ListByPost returns the comments attached to a post, oldest first,
// with the author's display name joined in.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.description, c.created_at, c.author_id, c.post_id, u.user_name
		   FROM comments c
		   JOIN users u ON u.id = c.author_id
		  WHERE c.post_id = ?
		  ORDER BY c.created_at`,
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Description, &c.Date, &c.AuthorID, &c.PostID, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
