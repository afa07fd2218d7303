package catalog

import (
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// Product is a catalog product as reported by the backend
type Product struct {
	ID          int64              `json:"id"`
	Name        string             `json:"nombre"`
	Description string             `json:"descripcion"`
	UnitPrice   valueobject.Money  `json:"precioUnitario"`
	BasePrice   *valueobject.Money `json:"precioBase,omitempty"`
	Active      bool               `json:"activo"`
}

// ProductForm is the payload for creating or updating a product
type ProductForm struct {
	Name        string            `json:"nombre" validate:"required"`
	Description string            `json:"descripcion"`
	UnitPrice   valueobject.Money `json:"precioUnitario"`
}
