package models

import "time"

// Topic is a subdivision of a Subject, e.g. "Binary Search Trees" within
// "Data Structures and Algorithms". (subject_id, slug) is unique.
type Topic struct {
	ID          string    `db:"id" json:"id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TopicWithCounts augments a topic with per-kind material counts.
type TopicWithCounts struct {
	Topic
	NotesCount        int `db:"notes_count" json:"notes_count"`
	QuizCount         int `db:"quiz_count" json:"quiz_count"`
	PresentationCount int `db:"presentation_count" json:"presentation_count"`
}

// TopicFilter captures supported filters for listing topics.
type TopicFilter struct {
	SubjectID string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
