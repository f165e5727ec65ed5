package dto

import (
	"encoding/json"

	"store-rating/constants"
)

type CreateUserInput struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Address  string         `json:"address"`
	Password string         `json:"password"`
	Role     constants.Role `json:"role"`
}

func (in CreateUserInput) Validate() FieldErrors {
	fe := SignupInput{Name: in.Name, Email: in.Email, Address: in.Address, Password: in.Password}.Validate()
	if in.Role != "" && !in.Role.Valid() {
		fe.add("role", "must be one of ADMIN, USER, OWNER")
	}
	return fe
}

type CreateStoreInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Address string  `json:"address"`
	OwnerID *int64  `json:"ownerId"`
}

func (in CreateStoreInput) Validate() FieldErrors {
	var fe FieldErrors
	if in.Name == "" {
		fe.add("name", "is required")
	}
	if in.Email != nil {
		checkEmail(&fe, "email", *in.Email)
	}
	checkAddress(&fe, in.Address)
	if in.OwnerID != nil && *in.OwnerID <= 0 {
		fe.add("ownerId", "must be a positive integer")
	}
	return fe
}

// StoreFilter fields are substring matches combined with AND; empty means unset.
type StoreFilter struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
}

type UserFilter struct {
	Name    string         `form:"name"`
	Email   string         `form:"email"`
	Address string         `form:"address"`
	Role    constants.Role `form:"role"`
}

type DashboardResponse struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

type AdminStoreResponse struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Email   *string  `json:"email"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating"`
}

// AdminUserResponse carries a "rating" key only for users that own a store.
type AdminUserResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Role      constants.Role `json:"role"`
	OwnsStore bool           `json:"-"`
	Rating    *float64       `json:"-"`
}

func (r AdminUserResponse) MarshalJSON() ([]byte, error) {
	type plain AdminUserResponse
	if !r.OwnsStore {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		Rating *float64 `json:"rating"`
	}{plain(r), r.Rating})
}
