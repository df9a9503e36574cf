package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TaskStatus tracks the generation workflow lifecycle: pending ->
// in_progress -> completed | failed. The terminal states never transition
// further.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Valid reports whether the status is a known lifecycle state.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskFailed:
		return true
	}
	return false
}

// Terminal reports whether the status ends the lifecycle.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskPending:
		return next == TaskInProgress
	case TaskInProgress:
		return next == TaskCompleted || next == TaskFailed
	}
	return false
}

// Task records one material generation request. TopicID stays null until
// the topic is resolved or created from the TopicName hint; MaterialID is
// set on completion, ErrorMessage on failure.
type Task struct {
	ID           string         `db:"id" json:"id"`
	SubjectID    string         `db:"subject_id" json:"subject_id"`
	TopicID      *string        `db:"topic_id" json:"topic_id,omitempty"`
	TopicName    *string        `db:"topic_name" json:"topic_name,omitempty"`
	MaterialKind MaterialKind   `db:"material_kind" json:"material_kind"`
	Status       TaskStatus     `db:"status" json:"status"`
	InputParams  types.JSONText `db:"input_params" json:"input_params,omitempty"`
	MaterialID   *string        `db:"material_id" json:"material_id,omitempty"`
	ErrorMessage *string        `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	StartedAt    *time.Time     `db:"started_at" json:"started_at,omitempty"`
	CompletedAt  *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
}

// TaskFilter captures supported filters for listing tasks.
type TaskFilter struct {
	Status       string
	SubjectID    string
	MaterialKind string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// TaskStats aggregates task counts by status for the stats endpoint.
type TaskStats struct {
	Pending    int `db:"pending" json:"pending"`
	InProgress int `db:"in_progress" json:"in_progress"`
	Completed  int `db:"completed" json:"completed"`
	Failed     int `db:"failed" json:"failed"`
}
