package models

// User roles understood by the access gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account allowed to place orders. The credential
// table is static and injected at startup; there is no registration.
type User struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"-" validate:"required"` // bcrypt hash
	Role     string `json:"role" validate:"required,oneof=admin user"`
}
