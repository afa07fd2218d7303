package stats

import (
	"time"

	"github.com/softpan/console/internal/domain/shared/valueobject"
)

// SalesSummary aggregates sales over a reporting period
type SalesSummary struct {
	Total         valueobject.Money `json:"totalVentas"`
	Transactions  int               `json:"cantidadTransacciones"`
	AverageTicket valueobject.Money `json:"ticketPromedio"`
	Collected     valueobject.Money `json:"totalCobrado"`
}

// DebtSummary aggregates outstanding balances across all customers
type DebtSummary struct {
	Total            valueobject.Money `json:"totalDeudas"`
	CustomersInDebt  int               `json:"cantidadClientesConDeuda"`
	AveragePerDebtor valueobject.Money `json:"promedioDeudaPorCliente"`
}

// TopProduct is one entry of the best-sellers ranking
type TopProduct struct {
	ProductID int64             `json:"productoId"`
	Name      string            `json:"nombreProducto"`
	Quantity  int               `json:"cantidadVendida"`
	Total     valueobject.Money `json:"totalVendido"`
}

// CustomerDebt is one entry of the largest-debtors ranking
type CustomerDebt struct {
	CustomerID   int64             `json:"clienteId"`
	Name         string            `json:"nombreCliente"`
	Debt         valueobject.Money `json:"montoDeuda"`
	PendingSales int               `json:"cantidadVentasPendientes"`
}

// PeriodComparison compares the current period's sales against the previous one
type PeriodComparison struct {
	Current   valueobject.Money `json:"actual"`
	Previous  valueobject.Money `json:"anterior"`
	Variation float64           `json:"variacionPorcentual"`
}

// WeekdaySales is the sales aggregate for one day of the week
type WeekdaySales struct {
	Weekday      int               `json:"diaSemana"`
	WeekdayName  string            `json:"nombreDia"`
	Total        valueobject.Money `json:"totalVentas"`
	Transactions int               `json:"cantidadTransacciones"`
}

// CustomerTypeSales is the sales aggregate for one customer type
type CustomerTypeSales struct {
	Type         int               `json:"tipoCliente"`
	TypeName     string            `json:"tipoClienteNombre"`
	Total        valueobject.Money `json:"totalVentas"`
	Transactions int               `json:"cantidadTransacciones"`
}

// MethodBreakdown is the collected-amount aggregate for one payment method
type MethodBreakdown struct {
	Method     int               `json:"tipoPago"`
	MethodName string            `json:"tipoPagoNombre"`
	Total      valueobject.Money `json:"total"`
	Payments   int               `json:"cantidadPagos"`
}

// StaleProduct is an active product with no sales in the queried window
type StaleProduct struct {
	ProductID int64      `json:"productoId"`
	Name      string     `json:"nombreProducto"`
	LastSale  *time.Time `json:"ultimaVenta"`
}

// Dashboard is the fixed panel set shown on the start screen. Panels that
// failed to load are nil; the remaining ones are still rendered.
type Dashboard struct {
	Today             *SalesSummary
	Week              *SalesSummary
	Month             *SalesSummary
	Debts             *DebtSummary
	TopProducts       []TopProduct
	TopDebtors        []CustomerDebt
	WeeklyComparison  *PeriodComparison
	MonthlyComparison *PeriodComparison
	Weekdays          []WeekdaySales
	CustomerTypes     []CustomerTypeSales
	Methods           []MethodBreakdown
	StaleProducts     []StaleProduct
}
