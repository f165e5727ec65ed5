package dto

import "store-rating/constants"

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (in SignupInput) Validate() FieldErrors {
	var fe FieldErrors
	checkName(&fe, in.Name)
	checkEmail(&fe, "email", in.Email)
	checkAddress(&fe, in.Address)
	checkPassword(&fe, "password", in.Password)
	return fe
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() FieldErrors {
	var fe FieldErrors
	checkEmail(&fe, "email", in.Email)
	if in.Password == "" {
		fe.add("password", "is required")
	}
	return fe
}

type ChangePasswordInput struct {
	UserID      int64  `json:"userId"`
	NewPassword string `json:"newPassword"`
}

func (in ChangePasswordInput) Validate() FieldErrors {
	var fe FieldErrors
	if in.UserID <= 0 {
		fe.add("userId", "must be a positive integer")
	}
	checkPassword(&fe, "newPassword", in.NewPassword)
	return fe
}

type UserSummary struct {
	ID   uint           `json:"id"`
	Name string         `json:"name"`
	Role constants.Role `json:"role"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type IDResponse struct {
	ID uint `json:"id"`
}
