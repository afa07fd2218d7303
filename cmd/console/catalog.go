package main

import (
	"context"
	"flag"
	"fmt"

	catalogapp "github.com/softpan/console/internal/application/catalog"
	"github.com/softpan/console/internal/domain/shared/valueobject"
)

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: products <list|get|create|update|deactivate> [options]")
	}

	switch args[0] {
	case "list":
		return a.productsList(ctx, args[1:])
	case "get":
		return a.productsGet(ctx, args[1:])
	case "create":
		return a.productsCreate(ctx, args[1:])
	case "update":
		return a.productsUpdate(ctx, args[1:])
	case "deactivate":
		return a.productsDeactivate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown products subcommand %q", args[0])
	}
}

func (a *app) productsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products list", flag.ExitOnError)
	all := fs.Bool("all", false, "Include inactive products")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		products []catalogapp.Product
		err      error
	)
	if *all {
		products, err = a.products.List(ctx)
	} else {
		products, err = a.products.ListActive(ctx)
	}
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			fmt.Sprint(p.ID), p.Name, p.UnitPrice.StringFixed(2), yesNo(p.Active),
		})
	}
	table([]string{"ID", "NAME", "PRICE", "ACTIVE"}, rows)
	return nil
}

func (a *app) productsGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products get", flag.ExitOnError)
	id := fs.Int64("id", 0, "Product ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.products.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("ID:          %d\n", p.ID)
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Description: %s\n", p.Description)
	fmt.Printf("Price:       %s\n", p.UnitPrice.StringFixed(2))
	fmt.Printf("Active:      %s\n", yesNo(p.Active))
	return nil
}

func (a *app) productsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products create", flag.ExitOnError)
	name := fs.String("name", "", "Product name")
	description := fs.String("description", "", "Product description")
	price := fs.String("price", "", "Unit price, e.g. 1.25")
	if err := fs.Parse(args); err != nil {
		return err
	}

	unitPrice, err := valueobject.NewMoneyFromString(*price)
	if err != nil {
		return err
	}

	created, err := a.products.Create(ctx, catalogapp.ProductForm{
		Name:        *name,
		Description: *description,
		UnitPrice:   unitPrice,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created product %d (%s)\n", created.ID, created.Name)
	return nil
}

func (a *app) productsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products update", flag.ExitOnError)
	id := fs.Int64("id", 0, "Product ID")
	name := fs.String("name", "", "Product name")
	description := fs.String("description", "", "Product description")
	price := fs.String("price", "", "Unit price, e.g. 1.25")
	if err := fs.Parse(args); err != nil {
		return err
	}

	unitPrice, err := valueobject.NewMoneyFromString(*price)
	if err != nil {
		return err
	}

	updated, err := a.products.Update(ctx, *id, catalogapp.ProductForm{
		Name:        *name,
		Description: *description,
		UnitPrice:   unitPrice,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated product %d (%s)\n", updated.ID, updated.Name)
	return nil
}

func (a *app) productsDeactivate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products deactivate", flag.ExitOnError)
	id := fs.Int64("id", 0, "Product ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.products.Deactivate(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Deactivated product %d\n", *id)
	return nil
}
