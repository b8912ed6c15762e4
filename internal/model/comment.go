package model

import "time"

// Comment is a reply attached to a post.
//
// Fields:
//  ID          – primary key identifier.
//  Description – comment text.
//  Date        – server-side creation timestamp.
//  AuthorID    – user who wrote the comment.
//  PostID      – post the comment belongs to.
//  AuthorName  – denormalized display name of the author, filled by
//                list queries that join the users table; empty
//                elsewhere.
type Comment struct {
	ID          uint64    // comments.id
	Description string    // comments.description
	Date        time.Time // comments.created_at
	AuthorID    uint64    // comments.author_id
	PostID      uint64    // comments.post_id
	AuthorName  string    // users.user_name (join only)
}
