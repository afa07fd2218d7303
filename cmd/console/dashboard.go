package main

import (
	"context"
	"flag"
	"fmt"

	statsapp "github.com/softpan/console/internal/application/stats"
)

func (a *app) cmdDashboard(ctx context.Context, _ []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	d := a.dashboard.Load(ctx)

	printSummary("Today", d.Today)
	printSummary("This week", d.Week)
	printSummary("This month", d.Month)

	printComparison("Week vs previous", d.WeeklyComparison)
	printComparison("Month vs previous", d.MonthlyComparison)
	fmt.Println()

	if d.Debts != nil {
		fmt.Printf("Outstanding debt: %s across %d customers (avg %s)\n\n",
			d.Debts.Total.StringFixed(2), d.Debts.CustomersInDebt, d.Debts.AveragePerDebtor.StringFixed(2))
	} else {
		fmt.Println("Outstanding debt: unavailable")
	}

	if len(d.TopProducts) > 0 {
		fmt.Println("Top products:")
		rows := make([][]string, 0, len(d.TopProducts))
		for _, p := range d.TopProducts {
			rows = append(rows, []string{p.Name, fmt.Sprint(p.Quantity), p.Total.StringFixed(2)})
		}
		table([]string{"PRODUCT", "SOLD", "TOTAL"}, rows)
		fmt.Println()
	}

	if len(d.TopDebtors) > 0 {
		fmt.Println("Largest debtors:")
		rows := make([][]string, 0, len(d.TopDebtors))
		for _, c := range d.TopDebtors {
			rows = append(rows, []string{c.Name, c.Debt.StringFixed(2), fmt.Sprint(c.PendingSales)})
		}
		table([]string{"CUSTOMER", "DEBT", "PENDING SALES"}, rows)
		fmt.Println()
	}

	if len(d.Weekdays) > 0 {
		fmt.Println("Sales by weekday:")
		rows := make([][]string, 0, len(d.Weekdays))
		for _, day := range d.Weekdays {
			rows = append(rows, []string{day.WeekdayName, day.Total.StringFixed(2), fmt.Sprint(day.Transactions)})
		}
		table([]string{"DAY", "TOTAL", "TRANSACTIONS"}, rows)
		fmt.Println()
	}

	if len(d.CustomerTypes) > 0 {
		fmt.Println("Sales by customer type:")
		rows := make([][]string, 0, len(d.CustomerTypes))
		for _, ct := range d.CustomerTypes {
			rows = append(rows, []string{ct.TypeName, ct.Total.StringFixed(2), fmt.Sprint(ct.Transactions)})
		}
		table([]string{"TYPE", "TOTAL", "TRANSACTIONS"}, rows)
		fmt.Println()
	}

	if len(d.Methods) > 0 {
		fmt.Println("Collected by payment method:")
		rows := make([][]string, 0, len(d.Methods))
		for _, m := range d.Methods {
			rows = append(rows, []string{m.MethodName, m.Total.StringFixed(2), fmt.Sprint(m.Payments)})
		}
		table([]string{"METHOD", "COLLECTED", "PAYMENTS"}, rows)
		fmt.Println()
	}

	if len(d.StaleProducts) > 0 {
		fmt.Println("Products without recent sales:")
		rows := make([][]string, 0, len(d.StaleProducts))
		for _, p := range d.StaleProducts {
			lastSale := "-"
			if p.LastSale != nil {
				lastSale = formatDate(*p.LastSale)
			}
			rows = append(rows, []string{p.Name, lastSale})
		}
		table([]string{"PRODUCT", "LAST SALE"}, rows)
	}
	return nil
}

func printComparison(label string, c *statsapp.PeriodComparison) {
	if c == nil {
		fmt.Printf("%s: unavailable\n", label)
		return
	}
	fmt.Printf("%s: %s vs %s (%+.1f%%)\n",
		label, c.Current.StringFixed(2), c.Previous.StringFixed(2), c.Variation)
}

func printSummary(label string, s *statsapp.SalesSummary) {
	if s == nil {
		fmt.Printf("%s: unavailable\n\n", label)
		return
	}
	fmt.Printf("%s: %s in %d transactions (avg ticket %s, collected %s)\n\n",
		label, s.Total.StringFixed(2), s.Transactions, s.AverageTicket.StringFixed(2), s.Collected.StringFixed(2))
}

func (a *app) cmdStats(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: stats <weekday|methods|comparison|stale> [options]")
	}

	switch args[0] {
	case "weekday":
		return a.statsWeekday(ctx)
	case "methods":
		return a.statsMethods(ctx)
	case "comparison":
		return a.statsComparison(ctx, args[1:])
	case "stale":
		return a.statsStale(ctx, args[1:])
	default:
		return fmt.Errorf("unknown stats subcommand %q", args[0])
	}
}

func (a *app) statsWeekday(ctx context.Context) error {
	breakdown, err := a.stats.SalesByWeekday(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(breakdown))
	for _, d := range breakdown {
		rows = append(rows, []string{d.WeekdayName, d.Total.StringFixed(2), fmt.Sprint(d.Transactions)})
	}
	table([]string{"DAY", "TOTAL", "TRANSACTIONS"}, rows)
	return nil
}

func (a *app) statsMethods(ctx context.Context) error {
	breakdown, err := a.stats.PaymentMethodBreakdown(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(breakdown))
	for _, m := range breakdown {
		rows = append(rows, []string{m.MethodName, m.Total.StringFixed(2), fmt.Sprint(m.Payments)})
	}
	table([]string{"METHOD", "COLLECTED", "PAYMENTS"}, rows)
	return nil
}

func (a *app) statsComparison(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats comparison", flag.ExitOnError)
	period := fs.String("period", "week", "Comparison period (week, month)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		comparison *statsapp.PeriodComparison
		err        error
	)
	switch *period {
	case "week":
		comparison, err = a.stats.WeeklyComparison(ctx)
	case "month":
		comparison, err = a.stats.MonthlyComparison(ctx)
	default:
		return fmt.Errorf("period must be week or month, got %q", *period)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Current:  %s\n", comparison.Current.StringFixed(2))
	fmt.Printf("Previous: %s\n", comparison.Previous.StringFixed(2))
	fmt.Printf("Change:   %+.1f%%\n", comparison.Variation)
	return nil
}

func (a *app) statsStale(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats stale", flag.ExitOnError)
	days := fs.Int("days", 30, "Window in days without sales")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stale, err := a.stats.StaleProducts(ctx, *days)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(stale))
	for _, p := range stale {
		lastSale := "-"
		if p.LastSale != nil {
			lastSale = formatDate(*p.LastSale)
		}
		rows = append(rows, []string{fmt.Sprint(p.ProductID), p.Name, lastSale})
	}
	table([]string{"ID", "PRODUCT", "LAST SALE"}, rows)
	return nil
}
