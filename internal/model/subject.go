package model

import "time"

// Subject is a topic that posts are filed under and that users
// subscribe to. Subjects are created out of band (seed data or an
// admin tool); the API only reads them.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short name of the topic.
//  Description – longer blurb shown on the subject page.
//  Date        – when the subject was created.
type Subject struct {
	ID          uint64    `json:"id"`          // subjects.id
	Title       string    `json:"title"`       // subjects.title
	Description string    `json:"description"` // subjects.description
	Date        time.Time `json:"date"`        // subjects.created_at
}
