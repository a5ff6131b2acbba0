package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSales      Role = "sales"
	RoleProduction Role = "production"
	RoleWarehouse  Role = "warehouse"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSales, RoleProduction, RoleWarehouse:
		return true
	}
	return false
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateUserParams struct {
	Role   *Role `json:"role"`
	Active *bool `json:"active"`
}
