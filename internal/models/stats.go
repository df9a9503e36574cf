package models

// MaterialKindCounts breaks material totals down by kind.
type MaterialKindCounts struct {
	Notes         int `db:"notes" json:"notes"`
	Quizzes       int `db:"quizzes" json:"quizzes"`
	Presentations int `db:"presentations" json:"presentations"`
}

// StatsOverview is the aggregate snapshot served by the stats endpoint.
type StatsOverview struct {
	Subjects  int                `json:"subjects"`
	Topics    int                `json:"topics"`
	Materials MaterialKindCounts `json:"materials"`
	Tasks     TaskStats          `json:"tasks"`
}
