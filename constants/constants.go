package constants

// Role is the access level carried by every user and every issued token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleUser, RoleOwner}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// RoleRouteGroups maps each role to the only route group it may call.
// The router and the client both read this table.
var RoleRouteGroups = map[Role]string{
	RoleAdmin: "/admin",
	RoleUser:  "/user",
	RoleOwner: "/owner",
}

// Context keys
const (
	CtxClaims    = "claims"
	CtxToken     = "token"
	CtxRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

// Error messages
const (
	ErrUnexpected         = "Unexpected error"
	ErrInvalidInput       = "Invalid input"
	ErrValidationFailed   = "Validation failed"
	ErrEmailExists        = "Email already registered"
	ErrInvalidCredentials = "Invalid credentials"
	ErrMissingAuthHeader  = "Missing or invalid Authorization header"
	ErrInvalidToken       = "Invalid token"
	ErrForbidden          = "Forbidden"
	ErrNoStoreForOwner    = "No store for owner"
	ErrStoreNotFound      = "Store not found"
	ErrUserNotFound       = "User not found"
	ErrOwnerHasStore      = "Owner already has a store"
	ErrTooManyRequests    = "Too many requests"
)
