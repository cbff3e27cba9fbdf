package dto

type LoginInput struct {
	Email    string `json:"username"`
	Password string `json:"password"`
}
