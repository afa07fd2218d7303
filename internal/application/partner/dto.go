package partner

import "time"

// Customer type codes as reported by the backend
const (
	TypeRetail    = 1
	TypeWholesale = 2
)

// Customer is a registered buyer as reported by the backend
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	Type      int       `json:"tipoCliente"`
	TypeName  string    `json:"tipoClienteNombre"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"fechaCreacion"`
}

// CustomerForm is the payload for creating or updating a customer
type CustomerForm struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"omitempty,phone"`
	Address string `json:"direccion"`
	Type    int    `json:"tipoCliente" validate:"required,oneof=1 2"`
}
