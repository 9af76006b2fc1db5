package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lukassup/route-ctl/src/internal/api"
	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/log"
)

const shutdownTimeout = 10 * time.Second

func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{baseCommand: baseCommand{fs: newFlagSet("serve")}}
	c.fs.StringVar(&c.bindAddr, "bind", "", "Address to bind the HTTP server (default: api.bind_address)")
	c.fs.IntVar(&c.maxRestarts, "max-restarts", 5, "Give up after this many server failures (0 = never)")
	return c
}

// ServeCommand runs the HTTP API over the route file.
type ServeCommand struct {
	baseCommand
	bindAddr    string
	maxRestarts int
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	if err := parseFlags(c.fs, args); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		return unexpectedArgs(c.fs)
	}

	cfg, err := loadAndValidateConfigOrFail(ctx)
	if err != nil {
		return err
	}
	if c.bindAddr == "" {
		c.bindAddr = cfg.API.BindAddress
	}

	mgr, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}
	c.mgr = mgr
	return nil
}

func (c *ServeCommand) Run() error {
	srv := api.NewServer(c.mgr, c.bindAddr)

	runner := NewRestartableRunner(RunnerConfig{
		Name:        "API server",
		MaxRestarts: c.maxRestarts,
	}, func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Stop(shutdownCtx)
		}
	})

	if err := runner.Start(context.Background()); err != nil {
		return errors.NewInternalError("failed to start API server", err)
	}
	log.Infof("Serving routes from %s", c.mgr.Path())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Infof("Received signal %v, shutting down...", sig)
		return runner.Stop(shutdownTimeout + time.Second)
	case <-runner.Done():
		if err := runner.LastError(); err != nil {
			return errors.NewIOError("API server stopped", err)
		}
		return nil
	}
}
