package models

// Account roles. Stored lowercase in the users table.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
