// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// PostCreatedEvent is published after a post has been persisted. It
// carries enough denormalized detail for downstream consumers to log
// or notify subscribers without querying the primary database.
type PostCreatedEvent struct {
	PostID       uint64 `json:"post_id"`
	Title        string `json:"title"`
	AuthorID     uint64 `json:"author_id"`
	AuthorName   string `json:"author_name"`
	SubjectID    uint64 `json:"subject_id"`
	SubjectTitle string `json:"subject_title"`
	CreatedAt    string `json:"created_at"`
}
