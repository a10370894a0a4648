package domain

import "time"

// Role is carried in session tokens.
type Role string

const RoleAdmin Role = "admin"

// Session describes an authenticated admin console session.
type Session struct {
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
