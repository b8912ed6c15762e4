package model

import "time"

// Post is an article published under a subject. AuthorID and
// SubjectID are non-nullable foreign keys; a post can only be
// created against an existing user and subject. Comments belong to
// their post and are removed with it.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – headline of the post.
//  Description – body text.
//  Date        – server-side creation timestamp.
//  AuthorID    – user who wrote the post.
//  SubjectID   – subject the post is filed under.
type Post struct {
	ID          uint64    // posts.id
	Title       string    // posts.title
	Description string    // posts.description
	Date        time.Time // posts.created_at
	AuthorID    uint64    // posts.author_id
	SubjectID   uint64    // posts.subject_id
}
