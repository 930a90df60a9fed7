package model

import "time"

// Edition is a yearly run of the selection process. Students and
// projects always belong to exactly one edition.
type Edition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
