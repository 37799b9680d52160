package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can authenticate against the API. Users are seeded
// at bootstrap or managed out-of-band; the API only reads them.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FullName     *string `json:"full_name"`
	Role         string  `json:"role"`
}
