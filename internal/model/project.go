package model

import "time"

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Partner   string    `json:"partner"`
	EditionID string    `json:"edition_id"`
	Positions int       `json:"positions"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment links a student to a project for a given position.
type Assignment struct {
	ProjectID  string    `json:"project_id"`
	StudentID  string    `json:"student_id"`
	Position   string    `json:"position"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}

// ProjectDetail is a project together with its current assignments.
type ProjectDetail struct {
	Project
	Assignments []Assignment `json:"assignments"`
}

type ProjectQuery struct {
	EditionID string
	Search    string
	Page      int
	Limit     int
}
