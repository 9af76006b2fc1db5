package commands

import (
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lukassup/route-ctl/src/internal/config"
	"github.com/lukassup/route-ctl/src/internal/errors"
	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/manager"
	"github.com/lukassup/route-ctl/src/internal/routes"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

// AppContext carries the global flags shared by every subcommand.
type AppContext struct {
	ConfigPath string
	// ConfigRequired is set when the configuration path was given
	// explicitly, so that a missing file is an error.
	ConfigRequired bool
	RouteFile      string
	Verbose        bool
	Quiet          bool

	// Out receives command output. Nil means stdout.
	Out io.Writer
	// In is read for "-" JSON documents. Nil means stdin.
	In io.Reader
}

func (c *AppContext) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *AppContext) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// loadAndValidateConfigOrFail loads the configuration file and validates it.
func loadAndValidateConfigOrFail(ctx *AppContext) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx.ConfigPath, ctx.ConfigRequired)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, errors.NewConfigError("configuration validation failed", err)
	}

	return cfg, nil
}

// newManager builds a manager for the route file selected by the global
// flags, the environment and the configuration, in that order.
func newManager(ctx *AppContext, cfg *config.Config) (*manager.Manager, error) {
	path, err := cfg.ResolveRouteFile(ctx.RouteFile)
	if err != nil {
		return nil, errors.NewInvalidOperationError("route file is not set", err)
	}
	opts, err := cfg.ManagerOptions()
	if err != nil {
		return nil, errors.NewConfigError("invalid manager options", err)
	}
	log.Debugf("Using route file %s", path)
	return manager.New(path, opts), nil
}

// parseFlags parses args with fs, reporting malformed arguments as an
// invalid operation.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return err
		}
		return errors.NewInvalidOperationError(fmt.Sprintf("invalid arguments for %s", fs.Name()), err)
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// positional returns the single positional argument named metavar.
func positional(fs *flag.FlagSet, metavar string) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", errors.Newf(errors.ErrCodeInvalidOperation, "%s: missing %s argument", fs.Name(), metavar)
	case 1:
		return fs.Arg(0), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidOperation, "%s: unexpected arguments %v", fs.Name(), fs.Args()[1:])
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewInternalError("failed to encode output", err)
	}
	buf = append(buf, '\n')
	if _, err := w.Write(buf); err != nil {
		return errors.NewIOError("failed to write output", err)
	}
	return nil
}

func writeRoutes(w io.Writer, records []*routes.Record) error {
	if records == nil {
		records = []*routes.Record{}
	}
	return writeJSON(w, manager.RoutesDocument{Routes: records})
}

// loadRoutesDocument reads a {"routes": [...]} document from path, or from
// the context input when path is "-".
func loadRoutesDocument(ctx *AppContext, path string) ([]*routes.Record, error) {
	if path == "-" {
		return manager.LoadRoutesJSON(ctx.in())
	}
	return manager.LoadRoutesJSONFile(path)
}

// ExitCode maps an error returned by a command onto the process exit code.
func ExitCode(err error) int {
	if err == nil || stderrors.Is(err, flag.ErrHelp) {
		return 0
	}
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidOperation:
		return 2
	case errors.ErrCodeInvalidRecord:
		return 3
	case errors.ErrCodeRecordNotFound:
		return 4
	case errors.ErrCodeMultipleRecordsFound:
		return 5
	case errors.ErrCodeEntryAlreadyExists:
		return 6
	case errors.ErrCodeStartTokenNotFound, errors.ErrCodeEndTokenNotFound:
		return 7
	case errors.ErrCodeConfig:
		return 8
	default:
		return 1
	}
}

func unexpectedArgs(fs *flag.FlagSet) error {
	return errors.Newf(errors.ErrCodeInvalidOperation, "%s: unexpected arguments %v", fs.Name(), fs.Args())
}
