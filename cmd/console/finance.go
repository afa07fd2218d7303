package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/softpan/console/internal/domain/payment"
	"github.com/softpan/console/internal/domain/shared"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

func (a *app) cmdPayments(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: payments <record|list|get> [options]")
	}

	switch args[0] {
	case "record":
		return a.paymentsRecord(ctx, args[1:])
	case "list":
		return a.paymentsList(ctx, args[1:])
	case "get":
		return a.paymentsGet(ctx, args[1:])
	default:
		return fmt.Errorf("unknown payments subcommand %q", args[0])
	}
}

// paymentsRecord drives the allocation workflow from flags: select the
// customer, set the amount, distribute (manually via -apply or automatically
// via -auto), then validate and submit.
func (a *app) paymentsRecord(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("payments record", flag.ExitOnError)
	customerID := fs.Int64("customer", 0, "Customer ID")
	amount := fs.String("amount", "", "Payment amount, e.g. 120.00")
	method := fs.String("method", "cash", "Payment method (cash, transfer)")
	note := fs.String("note", "", "Free-text note")
	auto := fs.Bool("auto", false, "Distribute the amount across pending sales automatically")
	yes := fs.Bool("yes", false, "Acknowledge a payment that exceeds the customer's total debt")
	var applies applyFlags
	fs.Var(&applies, "apply", "Manual allocation saleID=amount, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paymentAmount, err := valueobject.NewMoneyFromString(*amount)
	if err != nil {
		return err
	}
	paymentMethod, err := payment.ParseMethod(*method)
	if err != nil {
		return err
	}

	candidates, err := a.sales.PendingForCustomer(ctx, *customerID)
	if err != nil {
		return err
	}

	wf := payment.NewWorkflow()
	wf.SelectCustomer(*customerID, candidates)
	wf.SetAmount(paymentAmount)
	wf.SetMethod(paymentMethod)
	wf.SetNote(*note)

	if *auto {
		if err := wf.AutoDistribute(); err != nil {
			return err
		}
	}
	for _, apply := range applies {
		if !wf.Allocate(apply.saleID, apply.amount) {
			fmt.Fprintf(os.Stderr, "Ignored allocation %s to sale %d (outside the sale's outstanding balance)\n",
				apply.amount.StringFixed(2), apply.saleID)
		}
	}

	if *yes {
		wf.ConfirmExcess()
	}

	req, err := wf.BuildRequest()
	if err != nil {
		if errors.Is(err, shared.ErrConfirmationNeeded) {
			return fmt.Errorf("amount %s exceeds the customer's total debt of %s; re-run with -yes to confirm",
				paymentAmount.StringFixed(2), wf.TotalOutstanding().StringFixed(2))
		}
		return err
	}

	recorded, err := a.payments.Create(ctx, *req)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded payment %d of %s (%s)\n", recorded.ID, recorded.Amount.StringFixed(2), recorded.Method)
	for _, applied := range recorded.Applied {
		fmt.Printf("  sale %d: %s\n", applied.SaleID, applied.Amount.StringFixed(2))
	}
	if remainder := wf.Remainder(); remainder.IsPositive() {
		fmt.Printf("Unapplied remainder: %s\n", remainder.StringFixed(2))
	}
	return nil
}

func (a *app) paymentsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("payments list", flag.ExitOnError)
	customerID := fs.Int64("customer", 0, "Customer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payments, err := a.payments.ByCustomer(ctx, *customerID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			formatDate(p.PaidAt),
			p.Amount.StringFixed(2),
			p.Method.String(),
			p.Note,
		})
	}
	table([]string{"ID", "DATE", "AMOUNT", "METHOD", "NOTE"}, rows)
	return nil
}

func (a *app) paymentsGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("payments get", flag.ExitOnError)
	id := fs.Int64("id", 0, "Payment ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.payments.ByID(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Payment %d - %s, %s on %s\n", p.ID, p.Amount.StringFixed(2), p.Method, formatDate(p.PaidAt))
	if p.Note != "" {
		fmt.Printf("Note: %s\n", p.Note)
	}

	rows := make([][]string, 0, len(p.Applied))
	for _, applied := range p.Applied {
		rows = append(rows, []string{fmt.Sprint(applied.SaleID), applied.Amount.StringFixed(2)})
	}
	table([]string{"SALE", "APPLIED"}, rows)
	return nil
}

// applyFlags parses repeatable -apply saleID=amount flags
type applyFlags []manualAllocation

type manualAllocation struct {
	saleID int64
	amount valueobject.Money
}

func (f *applyFlags) String() string {
	return fmt.Sprint(len(*f), " allocations")
}

func (f *applyFlags) Set(value string) error {
	saleStr, amountStr, found := strings.Cut(value, "=")
	if !found {
		return fmt.Errorf("expected saleID=amount, got %q", value)
	}
	saleID, err := strconv.ParseInt(saleStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid sale ID %q", saleStr)
	}
	amount, err := valueobject.NewMoneyFromString(amountStr)
	if err != nil {
		return err
	}
	*f = append(*f, manualAllocation{saleID: saleID, amount: amount})
	return nil
}
