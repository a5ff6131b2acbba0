package customer

import "time"

type Customer struct {
	ID          int64     `json:"id"`
	RUC         string    `json:"ruc"`
	RazonSocial string    `json:"razon_social"`
	Email       string    `json:"email"`
	Telefono    string    `json:"telefono"`
	Direccion   string    `json:"direccion"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertInput carries the contact fields written on every order.
// On a RUC match the stored values are overwritten, last write wins.
type UpsertInput struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razon_social"`
	Email       string `json:"email"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
}

type Filter struct {
	Search *string
	Active *bool
}
