// Package cli assembles the rentledger cobra command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rentledger/internal/app"
	"rentledger/internal/config"
	"rentledger/internal/core"
	"rentledger/internal/kv"
)

// Options injects collaborators, mainly for tests. Zero values mean the
// configured backend, the wall clock and the process streams.
type Options struct {
	Store  kv.Store
	Clock  core.Clock
	Out    io.Writer
	Err    io.Writer
	Config *config.Config
}

type env struct {
	opts       Options
	configPath string
	trace      bool

	cfg       *config.Config
	store     kv.Store
	ownsStore bool
	app       *app.App
	logger    *slog.Logger
	prom      *core.PrometheusMetricsRecorder
}

// Execute runs the command line in args (os.Args when nil). Each invocation
// opens the store, loads the collections (seeding them on first use) and
// releases the store and metrics afterwards, whether or not the command failed.
func Execute(opts Options, args []string) (err error) {
	root, e := newRootCmd(opts)
	if args != nil {
		root.SetArgs(args)
	}
	defer func() {
		if terr := e.teardown(); terr != nil && err == nil {
			err = terr
		}
	}()
	return root.Execute()
}

func newRootCmd(opts Options) (*cobra.Command, *env) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:           "rentledger",
		Short:         "Track rental properties, tenants, leases, rent and expenses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd.Context())
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ./rentledger.yaml)")
	root.PersistentFlags().BoolVar(&e.trace, "trace", false, "write store operation spans as JSON lines to stderr")

	root.AddCommand(
		signInCmd(e),
		signUpCmd(e),
		signOutCmd(e),
		whoAmICmd(e),
		propertyCmd(e),
		unitCmd(e),
		tenantCmd(e),
		leaseCmd(e),
		paymentCmd(e),
		expenseCmd(e),
		summaryCmd(e),
		transactionsCmd(e),
		calendarCmd(e),
		exportCmd(e),
		backupCmd(e),
		restoreCmd(e),
	)
	return root, e
}

func (e *env) setup(ctx context.Context) error {
	cfg := e.opts.Config
	if cfg == nil {
		loaded, err := config.Load(e.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	e.cfg = cfg

	logger, err := newLogger(cfg, e.opts.Err)
	if err != nil {
		return err
	}
	e.logger = logger

	coreOpts := []core.Option{
		core.WithNamespace(cfg.Storage.Namespace),
		core.WithDefaultCurrency(cfg.Profile.Currency),
	}
	switch cfg.Metrics.Backend {
	case config.MetricsExpvar:
		coreOpts = append(coreOpts, core.WithMetricsRecorder(core.NewExpvarMetricsRecorder("")))
	case config.MetricsPrometheus:
		e.prom = core.NewPrometheusMetricsRecorder()
		coreOpts = append(coreOpts, core.WithMetricsRecorder(e.prom))
	}
	if e.trace {
		coreOpts = append(coreOpts, core.WithTracer(core.NewJSONTracer(e.opts.Err)))
	}

	e.store = e.opts.Store
	if e.store == nil {
		store, err := kv.Open(ctx, cfg.KVOptions())
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
		}
		e.store = store
		e.ownsStore = true
	}
	logger.Debug("store opened", "driver", e.store.Driver())

	e.app = app.New(e.store, app.Config{Clock: e.opts.Clock, Logger: logger}, coreOpts...)
	e.app.Open(ctx)
	return nil
}

func (e *env) teardown() error {
	if e.cfg == nil {
		return nil
	}
	if e.prom != nil && e.cfg.Metrics.Textfile != "" {
		if err := e.prom.WriteTextfile(e.cfg.Metrics.Textfile); err != nil {
			e.logger.Warn("metrics textfile not written", "path", e.cfg.Metrics.Textfile, "error", err)
		}
	}
	if e.ownsStore && e.store != nil {
		store := e.store
		e.store, e.ownsStore = nil, false
		return store.Close()
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return slog.New(slog.NewTextHandler(w, hopts)), nil
}
