package main

import (
	"context"
	"flag"
	"fmt"

	partnerapp "github.com/softpan/console/internal/application/partner"
)

func (a *app) cmdCustomers(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: customers <list|get|create|update|deactivate> [options]")
	}

	switch args[0] {
	case "list":
		return a.customersList(ctx)
	case "get":
		return a.customersGet(ctx, args[1:])
	case "create":
		return a.customersCreate(ctx, args[1:])
	case "update":
		return a.customersUpdate(ctx, args[1:])
	case "deactivate":
		return a.customersDeactivate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown customers subcommand %q", args[0])
	}
}

func (a *app) customersList(ctx context.Context) error {
	customers, err := a.customers.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			fmt.Sprint(c.ID), c.Name, c.Phone, c.TypeName, yesNo(c.Active),
		})
	}
	table([]string{"ID", "NAME", "PHONE", "TYPE", "ACTIVE"}, rows)
	return nil
}

func (a *app) customersGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customers get", flag.ExitOnError)
	id := fs.Int64("id", 0, "Customer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.customers.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("ID:      %d\n", c.ID)
	fmt.Printf("Name:    %s\n", c.Name)
	fmt.Printf("Phone:   %s\n", c.Phone)
	fmt.Printf("Address: %s\n", c.Address)
	fmt.Printf("Type:    %s\n", c.TypeName)
	fmt.Printf("Active:  %s\n", yesNo(c.Active))
	fmt.Printf("Since:   %s\n", formatDate(c.CreatedAt))
	return nil
}

func customerFormFlags(fs *flag.FlagSet) (name, phone, address *string, customerType *int) {
	name = fs.String("name", "", "Customer name")
	phone = fs.String("phone", "", "Phone number")
	address = fs.String("address", "", "Address")
	customerType = fs.Int("type", partnerapp.TypeRetail, "Customer type (1 retail, 2 wholesale)")
	return
}

func (a *app) customersCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customers create", flag.ExitOnError)
	name, phone, address, customerType := customerFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.customers.Create(ctx, partnerapp.CustomerForm{
		Name:    *name,
		Phone:   *phone,
		Address: *address,
		Type:    *customerType,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created customer %d (%s)\n", created.ID, created.Name)
	return nil
}

func (a *app) customersUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customers update", flag.ExitOnError)
	id := fs.Int64("id", 0, "Customer ID")
	name, phone, address, customerType := customerFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	updated, err := a.customers.Update(ctx, *id, partnerapp.CustomerForm{
		Name:    *name,
		Phone:   *phone,
		Address: *address,
		Type:    *customerType,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated customer %d (%s)\n", updated.ID, updated.Name)
	return nil
}

func (a *app) customersDeactivate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customers deactivate", flag.ExitOnError)
	id := fs.Int64("id", 0, "Customer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.customers.Deactivate(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deactivated customer %d\n", *id)
	return nil
}
