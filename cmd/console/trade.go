package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	tradeapp "github.com/softpan/console/internal/application/trade"
	"github.com/softpan/console/internal/domain/sale"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

func (a *app) cmdSales(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: sales <list|pending|get|create|delete> [options]")
	}

	switch args[0] {
	case "list":
		return a.salesList(ctx, false)
	case "pending":
		return a.salesList(ctx, true)
	case "get":
		return a.salesGet(ctx, args[1:])
	case "create":
		return a.salesCreate(ctx, args[1:])
	case "delete":
		return a.salesDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown sales subcommand %q", args[0])
	}
}

func (a *app) salesList(ctx context.Context, pendingOnly bool) error {
	var (
		sales []sale.Sale
		err   error
	)
	if pendingOnly {
		sales, err = a.sales.Pending(ctx)
	} else {
		sales, err = a.sales.List(ctx)
	}
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			fmt.Sprint(s.ID),
			s.CustomerName,
			formatDate(s.CreatedAt),
			s.Total.StringFixed(2),
			s.Paid.StringFixed(2),
			s.Outstanding.StringFixed(2),
			s.Status.String(),
		})
	}
	table([]string{"ID", "CUSTOMER", "DATE", "TOTAL", "PAID", "OUTSTANDING", "STATUS"}, rows)
	return nil
}

func (a *app) salesGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sales get", flag.ExitOnError)
	id := fs.Int64("id", 0, "Sale ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.sales.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Sale %d - %s (%s)\n", s.ID, s.CustomerName, formatDate(s.CreatedAt))
	fmt.Printf("Total %s, paid %s, outstanding %s (%s)\n\n",
		s.Total.StringFixed(2), s.Paid.StringFixed(2), s.Outstanding.StringFixed(2), s.Status)

	rows := make([][]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, []string{
			l.ProductName,
			fmt.Sprint(l.Quantity),
			l.UnitPrice.StringFixed(2),
			l.Subtotal.StringFixed(2),
		})
	}
	table([]string{"PRODUCT", "QTY", "UNIT", "SUBTOTAL"}, rows)
	return nil
}

func (a *app) salesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sales create", flag.ExitOnError)
	customerID := fs.Int64("customer", 0, "Customer ID")
	var lines lineFlags
	fs.Var(&lines, "line", "Line item productID:quantity[:unitPrice], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.sales.Create(ctx, tradeapp.SaleForm{
		CustomerID: *customerID,
		Lines:      lines,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded sale %d, total %s\n", created.ID, created.Total.StringFixed(2))
	return nil
}

func (a *app) salesDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sales delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "Sale ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.sales.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted sale %d\n", *id)
	return nil
}

// lineFlags parses repeatable -line productID:quantity[:unitPrice] flags.
// The unit price is optional; when omitted the backend uses the product's
// current price.
type lineFlags []tradeapp.LineForm

func (l *lineFlags) String() string {
	return fmt.Sprint(len(*l), " lines")
}

func (l *lineFlags) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("expected productID:quantity[:unitPrice], got %q", value)
	}

	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product ID %q", parts[0])
	}
	quantity, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", parts[1])
	}

	line := tradeapp.LineForm{ProductID: productID, Quantity: quantity}
	if len(parts) == 3 {
		price, err := valueobject.NewMoneyFromString(parts[2])
		if err != nil {
			return err
		}
		line.UnitPrice = price
	}

	*l = append(*l, line)
	return nil
}
