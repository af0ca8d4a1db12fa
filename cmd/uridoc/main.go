// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// uridoc generates HTTP API documentation from @uri comments in source code.
//
// Usage:
//
//	uridoc [flags] [root]
//	uridoc -output=docs/API.md src
//	uridoc -format=openapi -output=openapi.json .
//	uridoc -check -output=docs/API.md src
//	uridoc -serve=localhost:8080 src
//
// Settings come from uridoc.hcl when present; flags override the file.
// Exit status is 0 on success, 1 when comments failed to parse or -check found stale
// output, and 2 for usage or configuration errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"grimm.is/uridoc/internal/brand"
	"grimm.is/uridoc/internal/config"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/generator"
	"grimm.is/uridoc/internal/logging"
	"grimm.is/uridoc/internal/render"
	"grimm.is/uridoc/internal/report"
	"grimm.is/uridoc/internal/server"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	stdoutLabel = "stdout"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	configPath    string
	output        string
	format        string
	check         bool
	serve         string
	jobs          int
	keepGoing     bool
	exclude       stringList
	tableOrder    string
	strictMethods bool
	debug         bool
	jsonLogs      bool
	version       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet(brand.BinaryName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", brand.ConfigFileName, "Config file (optional unless set explicitly)")
	fs.StringVar(&opts.output, "output", "", "Output file (default: stdout)")
	fs.StringVar(&opts.format, "format", "", "Output format: "+strings.Join(render.Formats(), ", "))
	fs.BoolVar(&opts.check, "check", false, "Fail if -output is not up to date instead of writing it")
	fs.StringVar(&opts.serve, "serve", "", "Serve live documentation on this address instead of writing it")
	fs.IntVar(&opts.jobs, "jobs", 0, "Maximum files read concurrently")
	fs.BoolVar(&opts.keepGoing, "keep-going", true, "Skip comments that fail to parse instead of aborting")
	fs.Var(&opts.exclude, "exclude", "Glob of paths to skip, relative to root (repeatable)")
	fs.StringVar(&opts.tableOrder, "table-order", "", "Parameter table order: declaration or key")
	fs.BoolVar(&opts.strictMethods, "strict-methods", false, "Reject comments that declare more than one method")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.jsonLogs, "json-logs", false, "Log in JSON")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [root]\n\n%s\n\nFlags:\n", brand.BinaryName, brand.Description)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, nil, fmt.Errorf("expected at most one root directory, got %d arguments", fs.NArg())
	}
	return opts, fs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, brand.VersionString())
		return exitOK
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = stderr
	logCfg.JSON = opts.jsonLogs
	if opts.debug {
		logCfg.Level = logging.LevelDebug
	} else {
		logCfg.Level = logging.LevelWarn
	}
	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	rep := report.New(stderr)

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		rep.Error(err)
		return exitUsage
	}

	if opts.check && cfg.Output == "" {
		fmt.Fprintln(stderr, "Error: -check needs an output file (-output or output in the config)")
		return exitUsage
	}

	if opts.check && opts.serve != "" {
		fmt.Fprintln(stderr, "Error: -check and -serve are mutually exclusive")
		return exitUsage
	}

	gen, err := generator.New(cfg, logger)
	if err != nil {
		rep.Error(err)
		return exitUsage
	}

	if opts.serve != "" {
		srv := server.New(gen, cfg.RenderOptions(), nil, logger)
		fmt.Fprintf(stderr, "Serving documentation for %s on http://%s\n", cfg.Root, opts.serve)
		if err := srv.ListenAndServe(ctx, opts.serve); err != nil {
			rep.Error(err)
			return exitFailed
		}
		return exitOK
	}

	res, err := gen.Run(ctx)
	if err != nil {
		rep.Error(err)
		return exitFailed
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		rep.Error(err)
		return exitUsage
	}
	data, err := generator.Render(res, format, cfg.RenderOptions())
	if err != nil {
		rep.Error(err)
		return exitFailed
	}

	rep.Diagnostics(res.Diagnostics)

	switch {
	case opts.check:
		if err := generator.Check(cfg.Output, data); err != nil {
			rep.Error(err)
			return exitFailed
		}
		logger.Info("Output is up to date", "path", cfg.Output)
	case cfg.Output == "":
		if _, err := stdout.Write(data); err != nil {
			rep.Error(errors.Wrap(err, errors.KindIO, "failed to write output"))
			return exitFailed
		}
	default:
		if err := generator.Write(cfg.Output, data); err != nil {
			rep.Error(err)
			return exitFailed
		}
	}

	destination := cfg.Output
	if destination == "" {
		destination = stdoutLabel
	}
	rep.Summary(res, destination)

	if len(res.Diagnostics) > 0 {
		return exitFailed
	}
	return exitOK
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(opts *options, fs *flag.FlagSet) (*config.Config, error) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var (
		cfg *config.Config
		err error
	)
	if set["config"] {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, _, err = config.LoadOptional(opts.configPath)
	}
	if err != nil {
		return nil, err
	}

	if fs.NArg() == 1 {
		cfg.Root = fs.Arg(0)
	}
	if set["output"] {
		cfg.Output = opts.output
	}
	if set["format"] {
		cfg.Format = opts.format
	}
	if set["jobs"] {
		cfg.Jobs = opts.jobs
	}
	if set["keep-going"] {
		cfg.KeepGoing = opts.keepGoing
	}
	if len(opts.exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	}
	if set["table-order"] {
		cfg.Parser.TableOrder = opts.tableOrder
	}
	if opts.strictMethods {
		cfg.Parser.DuplicateMethod = string(endpoint.DuplicateError)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
