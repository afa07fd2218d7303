package stats

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	topProductCount = 5
	topDebtorCount  = 5
	staleWindowDays = 30
)

// DashboardService assembles the start-screen panel set
type DashboardService struct {
	stats  *StatsService
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stats *StatsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		stats:  stats,
		logger: logger,
	}
}

// Load fetches every panel concurrently and returns once all have settled.
// Each panel is independent: a failed one is logged and left nil so the
// rest of the dashboard still renders.
func (s *DashboardService) Load(ctx context.Context) *Dashboard {
	var (
		wg sync.WaitGroup
		d  Dashboard
	)

	panels := []func(){
		func() { d.Today = panel(ctx, s, "ventas hoy", s.stats.SalesToday) },
		func() { d.Week = panel(ctx, s, "ventas semana", s.stats.SalesThisWeek) },
		func() { d.Month = panel(ctx, s, "ventas mes", s.stats.SalesThisMonth) },
		func() { d.Debts = panel(ctx, s, "deudas", s.stats.DebtSummary) },
		func() {
			d.TopProducts = panel(ctx, s, "top productos", func(ctx context.Context) ([]TopProduct, error) {
				return s.stats.TopProducts(ctx, topProductCount)
			})
		},
		func() {
			d.TopDebtors = panel(ctx, s, "clientes deudores", func(ctx context.Context) ([]CustomerDebt, error) {
				return s.stats.TopDebtors(ctx, topDebtorCount)
			})
		},
		func() { d.WeeklyComparison = panel(ctx, s, "comparacion semanal", s.stats.WeeklyComparison) },
		func() { d.MonthlyComparison = panel(ctx, s, "comparacion mensual", s.stats.MonthlyComparison) },
		func() { d.Weekdays = panel(ctx, s, "ventas por dia", s.stats.SalesByWeekday) },
		func() { d.CustomerTypes = panel(ctx, s, "ventas por tipo de cliente", s.stats.SalesByCustomerType) },
		func() { d.Methods = panel(ctx, s, "pagos por tipo", s.stats.PaymentMethodBreakdown) },
		func() {
			d.StaleProducts = panel(ctx, s, "productos sin movimiento", func(ctx context.Context) ([]StaleProduct, error) {
				return s.stats.StaleProducts(ctx, staleWindowDays)
			})
		},
	}

	wg.Add(len(panels))
	for _, load := range panels {
		go func(load func()) {
			defer wg.Done()
			load()
		}(load)
	}

	wg.Wait()
	return &d
}

// panel runs one fetch and degrades its failure to a zero value plus a log
func panel[T any](ctx context.Context, s *DashboardService, name string, fn func(context.Context) (T, error)) T {
	value, err := fn(ctx)
	if err != nil {
		var zero T
		s.logger.Warn("dashboard panel failed", zap.String("panel", name), zap.Error(err))
		return zero
	}
	return value
}
