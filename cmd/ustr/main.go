// Command ustr converts and inspects text through the unitext library.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/unitext"
	"github.com/dshills/unitext/internal/config"
	"github.com/dshills/unitext/internal/logging"
)

// Version information (set by build flags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env carries what every subcommand needs.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    *logging.Logger
	native unitext.Native
}

// textOptions returns the options applied to every Text the command builds.
func (e *env) textOptions() []unitext.Option {
	return []unitext.Option{
		unitext.WithNative(e.native),
		unitext.WithLogger(e.log.WithComponent("unitext")),
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ustr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a TOML or YAML configuration file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion := fs.Bool("version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ustr - encoding-agnostic text tool\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  ustr [options] convert [-from ENC] [-to ENC] [file]\n")
		fmt.Fprintf(stderr, "  ustr [options] inspect [-from ENC] [-json] [file]\n")
		fmt.Fprintf(stderr, "  ustr [options] run [-timeout D] script.lua\n")
		fmt.Fprintf(stderr, "  ustr version\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEncodings: narrow, utf-8, utf-16, utf-32 or any charset name\n")
		fmt.Fprintf(stderr, "(utf-16le, iso-8859-1, windows-1252, ...). -from also accepts auto.\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  ustr convert -from utf-8 -to utf-16le in.txt > out.txt\n")
		fmt.Fprintf(stderr, "  ustr inspect -json notes.txt\n")
		fmt.Fprintf(stderr, "  echo 'naïve' | ustr convert -to narrow\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		printVersion(stdout)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}
	if rest[0] == "version" {
		printVersion(stdout)
		return 0
	}

	e, err := setup(*configPath, *logLevel, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var cmdErr error
	switch rest[0] {
	case "convert":
		cmdErr = e.convert(rest[1:])
	case "inspect":
		cmdErr = e.inspect(rest[1:])
	case "run":
		cmdErr = e.runScript(rest[1:])
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", rest[0])
		fs.Usage()
		return 2
	}

	if cmdErr != nil {
		if errors.Is(cmdErr, flag.ErrHelp) {
			return 0
		}
		if errors.Is(cmdErr, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", cmdErr)
		return 1
	}
	return 0
}

// errUsage reports a subcommand flag error already printed by its FlagSet.
var errUsage = errors.New("usage")

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "ustr %s\n", version)
	fmt.Fprintf(w, "Commit: %s\n", commit)
	fmt.Fprintf(w, "Built: %s\n", date)
}

// setup loads configuration and builds the logger and host codec.
// A non-empty logLevel overrides the configured level.
func setup(configPath, logLevel string, stdin io.Reader, stdout, stderr io.Writer) (*env, error) {
	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithFile(configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: stderr,
		Prefix: "ustr",
	})

	nat := unitext.DefaultNative()
	if cfg.Native.Narrow != config.Auto {
		nat, err = unitext.NativeFor(cfg.Native.Narrow)
		if err != nil {
			return nil, err
		}
	}
	log.Debug("narrow charset: %s", cfg.Native.Narrow)

	return &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		log:    log,
		native: nat,
	}, nil
}
