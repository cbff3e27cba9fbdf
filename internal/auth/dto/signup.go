package dto

type SignupInput struct {
	Email    string  `json:"username"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}
