package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CreateEditionRequest struct {
	Name     string `json:"name"`
	Year     int    `json:"year"`
	IsActive bool   `json:"is_active"`
}

type CreateStudentRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	EditionID string   `json:"edition_id"`
	Skills    []string `json:"skills"`
}

type UpdateStudentStatusRequest struct {
	Status string `json:"status"`
}

type CreateProjectRequest struct {
	Name      string `json:"name"`
	Partner   string `json:"partner"`
	EditionID string `json:"edition_id"`
	Positions int    `json:"positions"`
}

type AssignStudentRequest struct {
	StudentID string `json:"student_id"`
	Position  string `json:"position"`
}
