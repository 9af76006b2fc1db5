package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/lukassup/route-ctl/src/internal/commands"
	"github.com/lukassup/route-ctl/src/internal/config"
	"github.com/lukassup/route-ctl/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	var configPath, outputPath string

	// Define flags
	flag.StringVar(&configPath, "config", "", "Path to configuration file (default: $"+config.EnvConfigFile+" or "+config.DefaultConfigPath+")")
	flag.StringVar(&ctx.RouteFile, "F", "", "Route file (default: $"+config.EnvRouteFile+" or general.route_file)")
	flag.StringVar(&outputPath, "o", "", "Output file (default: stdout)")
	flag.BoolVar(&ctx.Verbose, "v", false, "Be more verbose")
	flag.BoolVar(&ctx.Quiet, "q", false, "Be more quiet")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Puppet route file manager\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [command options] [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list                        List all routes\n")
		fmt.Fprintf(os.Stderr, "  find VALUE                  Find routes by filter\n")
		fmt.Fprintf(os.Stderr, "  validate NAME               Validate a route from CLI arguments\n")
		fmt.Fprintf(os.Stderr, "  batch-validate JSON_FILE    Batch validate routes from a JSON file\n")
		fmt.Fprintf(os.Stderr, "  create NAME                 Create or update a route\n")
		fmt.Fprintf(os.Stderr, "  batch-create JSON_FILE      Batch create routes from a JSON file\n")
		fmt.Fprintf(os.Stderr, "  update NAME                 Update an existing route\n")
		fmt.Fprintf(os.Stderr, "  batch-update JSON_FILE      Batch update routes from a JSON file\n")
		fmt.Fprintf(os.Stderr, "  delete VALUE                Delete routes by filter\n")
		fmt.Fprintf(os.Stderr, "  batch-replace JSON_FILE     Batch replace routes from a JSON file\n")
		fmt.Fprintf(os.Stderr, "  serve                       Run the HTTP API server\n")
		fmt.Fprintf(os.Stderr, "  check                       Compare routes with the kernel routing table\n")
		fmt.Fprintf(os.Stderr, "  help                        Show this help message\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose && ctx.Quiet {
		log.Fatalf("-v and -q are mutually exclusive")
	}
	log.SetForceStdErr(true)
	log.SetVerbose(ctx.Verbose)
	log.SetQuiet(ctx.Quiet)

	ctx.ConfigPath, ctx.ConfigRequired = config.ResolveConfigPath(configPath)

	var out *os.File
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatalf("Failed to open output file: %v", err)
		}
		out = f
		ctx.Out = f
	}

	cmds := []commands.Runner{
		commands.CreateHelpCommand(flag.Usage),
		commands.CreateListCommand(),
		commands.CreateFindCommand(),
		commands.CreateValidateCommand(),
		commands.CreateBatchValidateCommand(),
		commands.CreateCreateCommand(),
		commands.CreateBatchCreateCommand(),
		commands.CreateUpdateCommand(),
		commands.CreateBatchUpdateCommand(),
		commands.CreateDeleteCommand(),
		commands.CreateBatchReplaceCommand(),
		commands.CreateServeCommand(),
		commands.CreateCheckCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	code := run(cmds, args, ctx)
	if out != nil {
		if err := out.Close(); err != nil {
			log.Errorf("Failed to close output file: %v", err)
			code = max(code, 1)
		}
	}
	os.Exit(code)
}

func run(cmds []commands.Runner, args []string, ctx *commands.AppContext) int {
	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() != subcommand {
			continue
		}
		if err := cmd.Init(args[1:], ctx); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			log.Errorf("Failed to initialize command: %v", err)
			return commands.ExitCode(err)
		}
		if err := cmd.Run(); err != nil {
			log.Errorf("Failed to run command: %v", err)
			return commands.ExitCode(err)
		}
		return 0
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	flag.Usage()
	return 2
}
