package workshop

import "time"

// Workshop is an external taller the production orders are farmed out to.
type Workshop struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Telefono    string    `json:"telefono"`
	Direccion   string    `json:"direccion"`
	Specialty   string    `json:"specialty"`
	Capacity    int       `json:"capacity"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateParams struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	Specialty   *string `json:"specialty"`
	Capacity    *int    `json:"capacity"`
	Active      *bool   `json:"active"`
}
