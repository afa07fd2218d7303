package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpan/console/internal/application/query"
	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/cache"
)

func newDashboardFixture(t *testing.T, handler http.HandlerFunc) *DashboardService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := cache.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	stats := NewStatsService(api.NewClient(srv.URL), query.NewClient(store))
	return NewDashboardService(stats, nil)
}

func dashboardHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/estadisticas/ventas/hoy":
			_, _ = w.Write([]byte(`{"totalVentas":100,"cantidadTransacciones":10,"ticketPromedio":10,"totalCobrado":90}`))
		case "/estadisticas/ventas/semana":
			_, _ = w.Write([]byte(`{"totalVentas":700,"cantidadTransacciones":70,"ticketPromedio":10,"totalCobrado":650}`))
		case "/estadisticas/ventas/mes":
			_, _ = w.Write([]byte(`{"totalVentas":3000,"cantidadTransacciones":300,"ticketPromedio":10,"totalCobrado":2800}`))
		case "/estadisticas/deudas/resumen":
			_, _ = w.Write([]byte(`{"totalDeudas":450,"cantidadClientesConDeuda":9,"promedioDeudaPorCliente":50}`))
		case "/estadisticas/productos/top":
			_, _ = w.Write([]byte(`[{"productoId":2,"nombreProducto":"Pan Frances","cantidadVendida":500,"totalVendido":75}]`))
		case "/estadisticas/deudas/clientes":
			_, _ = w.Write([]byte(`[{"clienteId":3,"nombreCliente":"Maria Perez","montoDeuda":80,"cantidadVentasPendientes":2}]`))
		case "/estadisticas/ventas/comparacion/semana":
			_, _ = w.Write([]byte(`{"actual":700,"anterior":600,"variacionPorcentual":16.7}`))
		case "/estadisticas/ventas/comparacion/mes":
			_, _ = w.Write([]byte(`{"actual":3000,"anterior":3200,"variacionPorcentual":-6.3}`))
		case "/estadisticas/ventas/por-dia-semana":
			_, _ = w.Write([]byte(`[{"diaSemana":6,"nombreDia":"Sabado","totalVentas":800,"cantidadTransacciones":95}]`))
		case "/estadisticas/ventas/por-tipo-cliente":
			_, _ = w.Write([]byte(`[{"tipoCliente":2,"tipoClienteNombre":"Mayorista","totalVentas":2100,"cantidadTransacciones":60}]`))
		case "/estadisticas/pagos/por-tipo":
			_, _ = w.Write([]byte(`[{"tipoPago":1,"tipoPagoNombre":"Efectivo","total":2500,"cantidadPagos":240}]`))
		case "/estadisticas/productos/sin-movimiento":
			assert.Equal(t, "30", r.URL.Query().Get("dias"))
			_, _ = w.Write([]byte(`[{"productoId":8,"nombreProducto":"Rosca","ultimaVenta":null}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestDashboardLoad(t *testing.T) {
	t.Run("assembles every panel", func(t *testing.T) {
		svc := newDashboardFixture(t, dashboardHandler(t))

		d := svc.Load(context.Background())
		require.NotNil(t, d.Today)
		require.NotNil(t, d.Week)
		require.NotNil(t, d.Month)
		require.NotNil(t, d.Debts)
		require.NotNil(t, d.WeeklyComparison)
		require.NotNil(t, d.MonthlyComparison)

		assert.Equal(t, 10, d.Today.Transactions)
		assert.Equal(t, 70, d.Week.Transactions)
		assert.Equal(t, 9, d.Debts.CustomersInDebt)
		assert.InDelta(t, -6.3, d.MonthlyComparison.Variation, 0.001)

		require.Len(t, d.TopProducts, 1)
		require.Len(t, d.TopDebtors, 1)
		require.Len(t, d.Weekdays, 1)
		assert.Equal(t, "Sabado", d.Weekdays[0].WeekdayName)
		require.Len(t, d.CustomerTypes, 1)
		assert.Equal(t, "Mayorista", d.CustomerTypes[0].TypeName)
		require.Len(t, d.Methods, 1)
		require.Len(t, d.StaleProducts, 1)
	})

	t.Run("a failed panel is nil without failing the rest", func(t *testing.T) {
		base := dashboardHandler(t)
		svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/estadisticas/deudas/resumen", "/estadisticas/ventas/por-tipo-cliente":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				base(w, r)
			}
		})

		d := svc.Load(context.Background())
		assert.Nil(t, d.Debts)
		assert.Nil(t, d.CustomerTypes)
		assert.NotNil(t, d.Today)
		assert.NotNil(t, d.Week)
		assert.NotNil(t, d.Month)
		assert.NotNil(t, d.WeeklyComparison)
		assert.NotEmpty(t, d.Methods)
	})
}
