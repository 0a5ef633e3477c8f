package main

import (
	"fmt"
	"os"

	"github.com/animalet/gregal-go/pkg/config"
	"github.com/animalet/gregal-go/pkg/environment"
	"github.com/animalet/gregal-go/pkg/server"
	goopt "github.com/napalu/goopt/v2"
	"github.com/napalu/goopt/v2/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version information set during build
var version = "dev"

type options struct {
	envName   string
	configDir string
	debug     bool
}

func newFlagParser(opts *options) (*goopt.Parser, error) {
	parser := goopt.NewParser()
	parser.SetVersion(version)

	if err := parser.BindFlag(&opts.envName, "env", goopt.NewArg(
		goopt.WithShortFlag("e"),
		goopt.WithDescription("Runtime environment name (production, development, testing, or custom)"),
	)); err != nil {
		return nil, err
	}
	if err := parser.BindFlag(&opts.configDir, "config", goopt.NewArg(
		goopt.WithShortFlag("c"),
		goopt.WithDefaultValue("."),
		goopt.WithDescription("Directory containing configuration files"),
	)); err != nil {
		return nil, err
	}
	if err := parser.BindFlag(&opts.debug, "debug", goopt.NewArg(
		goopt.WithShortFlag("d"),
		goopt.WithType(types.Standalone),
		goopt.WithDescription("Enable debug logging regardless of environment"),
	)); err != nil {
		return nil, err
	}

	return parser, nil
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	opts := &options{}
	parser, err := newFlagParser(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !parser.Parse(args) {
		for _, parseErr := range parser.GetErrors() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
		}
		parser.PrintUsage(os.Stderr)
		return 1
	}

	if opts.configDir == "" {
		// goopt only materializes default values on lookup.
		opts.configDir, _ = parser.Get("config")
	}

	env, err := environment.Detect(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	})
	server.ConfigureLogging(env)
	if opts.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().
		Str("environment", env.Name()).
		Bool("release_build", env.IsRelease()).
		Str("version", version).
		Msg("Starting gregal")

	cfg, err := config.NewConfigForEnvironment(opts.configDir, env)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	if err = registerResolvers(cfg); err != nil {
		log.Error().Err(err).Msg("Failed to register secret resolvers")
		return 1
	}

	serverCfg, err := config.Get[server.Config](cfg, "server")
	if err != nil {
		log.Error().Err(errors.Wrap(err, "failed to load server configuration")).Msg("Startup aborted")
		return 1
	}
	if serverCfg == nil {
		log.Error().Msg("server configuration is required")
		return 1
	}

	srv := server.NewServer(env, *serverCfg)
	if err = srv.StartAndWaitForSignal(); err != nil {
		log.Error().Err(err).Msg("Server error")
		return 1
	}
	return 0
}
