package models

// User is an account allowed to read the simulation run history.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt; never serialized
}
