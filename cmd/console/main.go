package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	catalogapp "github.com/softpan/console/internal/application/catalog"
	financeapp "github.com/softpan/console/internal/application/finance"
	identityapp "github.com/softpan/console/internal/application/identity"
	partnerapp "github.com/softpan/console/internal/application/partner"
	"github.com/softpan/console/internal/application/query"
	statsapp "github.com/softpan/console/internal/application/stats"
	tradeapp "github.com/softpan/console/internal/application/trade"
	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/cache"
	"github.com/softpan/console/internal/infrastructure/config"
	"github.com/softpan/console/internal/infrastructure/logger"
	"github.com/softpan/console/internal/infrastructure/session"
)

// app bundles the wired services every command runs against
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions *session.Store
	store    cache.Store

	auth      *identityapp.AuthService
	products  *catalogapp.ProductService
	customers *partnerapp.CustomerService
	sales     *tradeapp.SaleService
	payments  *financeapp.PaymentService
	stats     *statsapp.StatsService
	dashboard *statsapp.DashboardService
}

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]
	rest := args[1:]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	a, err := newApp(cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = a.store.Close()
	}()

	if err := a.run(context.Background(), command, rest); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}

// newApp wires the session store, gateway, cache and services
func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	sessions := session.NewStore(
		session.NewFileStorage(cfg.Session.Path),
		session.WithLogger(log.Named("session")),
	)
	if err := sessions.Hydrate(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	gateway := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(sessions),
		api.WithUnauthorizedHook(func() {
			sessions.Clear()
			fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
		}),
		api.WithLogger(log.Named("api")),
	)

	store, err := cache.NewFactory(cfg.Cache, cfg.Redis,
		cache.WithFactoryLogger(log.Named("cache")),
	).Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	queries := query.NewClient(store,
		query.WithTTL(cfg.Cache.DefaultTTL),
		query.WithLogger(log.Named("query")),
	)

	stats := statsapp.NewStatsService(gateway, queries)
	return &app{
		cfg:       cfg,
		log:       log,
		sessions:  sessions,
		store:     store,
		auth:      identityapp.NewAuthService(gateway, sessions, log.Named("auth")),
		products:  catalogapp.NewProductService(gateway, queries),
		customers: partnerapp.NewCustomerService(gateway, queries),
		sales:     tradeapp.NewSaleService(gateway, queries),
		payments:  financeapp.NewPaymentService(gateway, queries),
		stats:     stats,
		dashboard: statsapp.NewDashboardService(stats, log.Named("dashboard")),
	}, nil
}

// run dispatches a command. Every command returns an error instead of
// exiting so main owns the process exit code.
func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.cmdLogout(args)
	case "profile":
		return a.cmdProfile(args)
	case "products":
		return a.cmdProducts(ctx, args)
	case "customers":
		return a.cmdCustomers(ctx, args)
	case "sales":
		return a.cmdSales(ctx, args)
	case "payments":
		return a.cmdPayments(ctx, args)
	case "dashboard":
		return a.cmdDashboard(ctx, args)
	case "stats":
		return a.cmdStats(ctx, args)
	case "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireAuth guards commands that need an active session
func (a *app) requireAuth() error {
	if !a.sessions.IsAuthenticated() {
		return fmt.Errorf("not logged in (run: softpan login -email <email>)")
	}
	return nil
}

func printUsage() {
	fmt.Println(`Softpan Console - bakery point of sale client

Usage:
  softpan [flags] <command> [subcommand] [options]

Commands:
  login        Authenticate and store the session (-email, -password)
  register     Create an account (-email, -password, -first-name, -last-name)
  logout       Discard the stored session
  profile      Show the current user and roles

  products     list | get | create | update | deactivate
  customers    list | get | create | update | deactivate
  sales        list | pending | get | create | delete
  payments     record | list | get
  dashboard    Show today's figures, debts and rankings
  stats        weekday | methods | comparison | stale

Flags:
  -log-level   Log level (debug, info, warn, error)

Run "softpan <command> -h" for the options of each command.`)
}
