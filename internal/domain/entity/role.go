package entity

// Role names carried on User.Role and in session claims
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
