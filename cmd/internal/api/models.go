package api

type postRequest struct {
	Message string `json:"message" validate:"required"`
}

type replyRequest struct {
	Message string `json:"message" validate:"required"`
}

type blogRequest struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

type contactRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Message  string `json:"message" validate:"required"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
