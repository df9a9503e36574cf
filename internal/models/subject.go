package models

import "time"

// Subject represents an academic area such as "Data Structures and
// Algorithms". Its slug is derived from the name and globally unique.
type Subject struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectWithCounts augments a subject with aggregate child counts.
type SubjectWithCounts struct {
	Subject
	TopicCount    int `db:"topic_count" json:"topic_count"`
	MaterialCount int `db:"material_count" json:"material_count"`
	TaskCount     int `db:"task_count" json:"task_count"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
