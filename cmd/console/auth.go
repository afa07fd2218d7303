package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	identityapp "github.com/softpan/console/internal/application/identity"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		*password = pw
	}

	creds, err := a.auth.Login(ctx, identityapp.LoginRequest{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", creds.FullName(), strings.Join(creds.Roles, ", "))
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password (prompted when omitted)")
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		*password = pw
	}

	creds, err := a.auth.Register(ctx, identityapp.RegisterRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created, logged in as %s\n", creds.FullName())
	return nil
}

func (a *app) cmdLogout(_ []string) error {
	a.auth.Logout()
	fmt.Println("Logged out.")
	return nil
}

func (a *app) cmdProfile(_ []string) error {
	creds := a.sessions.Current()
	if creds == nil {
		return fmt.Errorf("not logged in")
	}
	fmt.Printf("Name:  %s\n", creds.FullName())
	fmt.Printf("Email: %s\n", creds.Email)
	fmt.Printf("Roles: %s\n", strings.Join(creds.Roles, ", "))
	return nil
}

// promptPassword reads the password from stdin. The terminal echo is left
// on; operators who care pass -password or pipe it in.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
