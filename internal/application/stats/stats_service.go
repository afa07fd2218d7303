// Package stats provides the typed client for the backend's reporting
// endpoints. All aggregation happens server-side; this package only fetches
// and caches the computed figures.
package stats

import (
	"context"
	"fmt"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/infrastructure/api"
)

const keyStats = "estadisticas"

// StatsService fetches server-computed reporting figures
type StatsService struct {
	gateway *api.Client
	queries *query.Client
}

// NewStatsService creates a new StatsService
func NewStatsService(gateway *api.Client, queries *query.Client) *StatsService {
	return &StatsService{
		gateway: gateway,
		queries: queries,
	}
}

// SalesToday returns today's sales summary
func (s *StatsService) SalesToday(ctx context.Context) (*SalesSummary, error) {
	return fetchOne[SalesSummary](ctx, s, "/estadisticas/ventas/hoy", query.Key(keyStats, "ventas", "hoy"))
}

// SalesThisWeek returns the running week's sales summary
func (s *StatsService) SalesThisWeek(ctx context.Context) (*SalesSummary, error) {
	return fetchOne[SalesSummary](ctx, s, "/estadisticas/ventas/semana", query.Key(keyStats, "ventas", "semana"))
}

// SalesThisMonth returns the running month's sales summary
func (s *StatsService) SalesThisMonth(ctx context.Context) (*SalesSummary, error) {
	return fetchOne[SalesSummary](ctx, s, "/estadisticas/ventas/mes", query.Key(keyStats, "ventas", "mes"))
}

// TopProducts returns the best-sellers ranking, limited to top entries
func (s *StatsService) TopProducts(ctx context.Context, top int) ([]TopProduct, error) {
	return fetchList[TopProduct](ctx, s,
		fmt.Sprintf("/estadisticas/productos/top?top=%d", top),
		query.Key(keyStats, "productos", "top", fmt.Sprint(top)))
}

// TopDebtors returns the customers with the largest outstanding balances
func (s *StatsService) TopDebtors(ctx context.Context, top int) ([]CustomerDebt, error) {
	return fetchList[CustomerDebt](ctx, s,
		fmt.Sprintf("/estadisticas/deudas/clientes?top=%d", top),
		query.Key(keyStats, "deudas", "clientes", fmt.Sprint(top)))
}

// DebtSummary returns the aggregate outstanding-balance figures
func (s *StatsService) DebtSummary(ctx context.Context) (*DebtSummary, error) {
	return fetchOne[DebtSummary](ctx, s, "/estadisticas/deudas/resumen", query.Key(keyStats, "deudas", "resumen"))
}

// WeeklyComparison compares this week's sales to the previous week
func (s *StatsService) WeeklyComparison(ctx context.Context) (*PeriodComparison, error) {
	return fetchOne[PeriodComparison](ctx, s, "/estadisticas/ventas/comparacion/semana", query.Key(keyStats, "comparacion", "semana"))
}

// MonthlyComparison compares this month's sales to the previous month
func (s *StatsService) MonthlyComparison(ctx context.Context) (*PeriodComparison, error) {
	return fetchOne[PeriodComparison](ctx, s, "/estadisticas/ventas/comparacion/mes", query.Key(keyStats, "comparacion", "mes"))
}

// SalesByWeekday returns the per-weekday sales breakdown
func (s *StatsService) SalesByWeekday(ctx context.Context) ([]WeekdaySales, error) {
	return fetchList[WeekdaySales](ctx, s, "/estadisticas/ventas/por-dia-semana", query.Key(keyStats, "ventas", "por-dia-semana"))
}

// SalesByCustomerType returns the per-customer-type sales breakdown
func (s *StatsService) SalesByCustomerType(ctx context.Context) ([]CustomerTypeSales, error) {
	return fetchList[CustomerTypeSales](ctx, s, "/estadisticas/ventas/por-tipo-cliente", query.Key(keyStats, "ventas", "por-tipo-cliente"))
}

// PaymentMethodBreakdown returns collected amounts grouped by payment method
func (s *StatsService) PaymentMethodBreakdown(ctx context.Context) ([]MethodBreakdown, error) {
	return fetchList[MethodBreakdown](ctx, s, "/estadisticas/pagos/por-tipo", query.Key(keyStats, "pagos", "por-tipo"))
}

// StaleProducts returns active products with no sales in the last days
func (s *StatsService) StaleProducts(ctx context.Context, days int) ([]StaleProduct, error) {
	return fetchList[StaleProduct](ctx, s,
		fmt.Sprintf("/estadisticas/productos/sin-movimiento?dias=%d", days),
		query.Key(keyStats, "productos", "sin-movimiento", fmt.Sprint(days)))
}

func fetchOne[T any](ctx context.Context, s *StatsService, path, key string) (*T, error) {
	return query.Fetch(ctx, s.queries, key, func(ctx context.Context) (*T, error) {
		var out T
		if err := s.gateway.Get(ctx, path, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func fetchList[T any](ctx context.Context, s *StatsService, path, key string) ([]T, error) {
	return query.Fetch(ctx, s.queries, key, func(ctx context.Context) ([]T, error) {
		var out []T
		if err := s.gateway.Get(ctx, path, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}
