package model

import "time"

// Student decision statuses, in the order a candidacy moves through them.
const (
	StatusPending   = "pending"
	StatusMaybe     = "maybe"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusConfirmed = "confirmed"
)

func ValidStudentStatus(status string) bool {
	switch status {
	case StatusPending, StatusMaybe, StatusApproved, StatusRejected, StatusConfirmed:
		return true
	default:
		return false
	}
}

type Student struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	EditionID string    `json:"edition_id"`
	Status    string    `json:"status"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentQuery carries the list filters accepted by the student endpoint.
type StudentQuery struct {
	EditionID string
	Status    string
	Search    string
	Page      int
	Limit     int
}
