package models

// CLO is a Course Learning Outcome attached to a quiz material. Numbers
// are 1-based and sequential within a material.
type CLO struct {
	ID          string  `db:"id" json:"id"`
	MaterialID  string  `db:"material_id" json:"material_id"`
	Number      int     `db:"number" json:"number"`
	Description string  `db:"description" json:"description"`
	BloomLevel  *string `db:"bloom_level" json:"bloom_level,omitempty"`
}
