// Command dealctl browses and manages deals from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/postgrest"
	"local-deals/internal/client/querycache"
	"local-deals/internal/client/session"
	"local-deals/internal/client/storefront"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "dealctl:", apiclient.Reason(err))
		}
		os.Exit(1)
	}
}

// app is everything a subcommand needs.
type app struct {
	cfg     *Config
	out     io.Writer
	logger  *slog.Logger
	api     *apiclient.Client
	session *session.Store
	sf      *storefront.Storefront
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("dealctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", os.Getenv(envPrefix+"CONFIG"), "Path to a YAML config file")
	global.Usage = func() { printUsage(stderr) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		printUsage(stderr)
		return flag.ErrHelp
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, stdout, stderr)
	if err != nil {
		return err
	}

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, a, rest)
}

func newApp(ctx context.Context, cfg *Config, stdout, stderr io.Writer) (*app, error) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.slogLevel()}))

	storage := session.NewFileStorage(cfg.SessionFile)
	api := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithTokenSource(storage),
		apiclient.WithLogger(logger),
	)
	store := session.NewStore(api, storage, logger)
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}

	opts := []storefront.Option{
		storefront.WithCache(querycache.New(querycache.WithTTL(cfg.CacheTTL))),
		storefront.WithNotifier(printNotifier{out: stdout, logger: logger}),
		storefront.WithLogger(logger),
	}
	if cfg.Backend == "postgrest" {
		db := postgrest.New(cfg.PostgREST.URL, cfg.PostgREST.Key, postgrest.WithLogger(logger))
		opts = append(opts, storefront.WithDealSource(postgrest.NewDealSource(db, nil)))
	}

	return &app{
		cfg:     cfg,
		out:     stdout,
		logger:  logger,
		api:     api,
		session: store,
		sf:      storefront.New(api, store, opts...),
	}, nil
}

// printNotifier shows successes on stdout. Failures are returned to run and
// printed once there, so they only go to the debug log here.
type printNotifier struct {
	out    io.Writer
	logger *slog.Logger
}

func (n printNotifier) Success(_ context.Context, msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n printNotifier) Error(ctx context.Context, msg string) {
	n.logger.DebugContext(ctx, "mutation failed", "reason", msg)
}
