package dto

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Content string `json:"content"`
}

type SetScheduleURLRequest struct {
	URL string `json:"url"`
}
