// Package cli implements the mycotrack command-line dashboard.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/config"
	"github.com/mycotrack/mycotrack/pkg/logging"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// app is the state shared by every command of one invocation.
type app struct {
	version string

	configPath string
	apiURL     string
	user       string
	output     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	api    client.API
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error: "+apperrors.UserMessage(err)))
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "mycotrack",
		Short: "Track mushroom cultivation batches",
		Long: `mycotrack records cultivation batches, their environmental observations
and their harvests, and shows yield charts, insights and batch comparisons
computed by the tracking service.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	flags.StringVar(&a.apiURL, "api-url", "", "tracking service base URL (overrides config)")
	flags.StringVarP(&a.user, "user", "u", "", "username sent with every request (overrides config)")
	flags.StringVarP(&a.output, "output", "o", OutputText, "output format: text, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.batchesCommand(),
		a.observeCommand(),
		a.harvestCommand(),
		a.chartsCommand(),
		a.insightsCommand(),
		a.compareCommand(),
	)
	return root
}

func (a *app) init() error {
	switch a.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return apperrors.Validationf("parse flags", "unknown output format %q (expected text, json or yaml)", a.output)
	}

	cfg, err := config.Load(a.version, a.configPath)
	if err != nil {
		return err
	}
	// A URL given on the command line is used as typed.
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	if a.user != "" {
		cfg.API.Username = a.user
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	c, err := client.NewClient(cfg.API.BaseURL, logger,
		client.WithUsername(cfg.API.Username),
		client.WithTimeout(cfg.API.Timeout()),
	)
	if err != nil {
		return err
	}
	a.api = c

	logger.Debug("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("api_url", logging.SanitizeURL(cfg.API.BaseURL)),
		zap.String("username", cfg.API.Username),
	)
	return nil
}

func (a *app) printer(w io.Writer) printer {
	return printer{w: w, format: a.output}
}
