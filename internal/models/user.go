package models

import "strings"

// Role name constants. CLIENT and ADMIN are the only roles the catalog
// distinguishes.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// User represents an account known to the token issuer.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Roles    string `json:"roles" gorm:"type:varchar(255)"` // comma-separated, e.g. "CLIENT,ADMIN"
}

// RoleList splits the stored role string into individual role names.
func (u User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
