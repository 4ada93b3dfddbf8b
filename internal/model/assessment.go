package model

// AssessmentType is a fixed lookup row seeded by migration.
// The seed is conflict-safe, so re-running migrations never duplicates it.
type AssessmentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
