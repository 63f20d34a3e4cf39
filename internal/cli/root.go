package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nubank/unibot/internal/chat"
	"github.com/nubank/unibot/internal/config"
	"github.com/nubank/unibot/internal/engine"
	"github.com/nubank/unibot/internal/logger"
	"github.com/nubank/unibot/internal/provider"
)

var Version = "dev"

type rootFlags struct {
	rules    string
	delay    time.Duration
	logLevel string
	seed     uint64
}

// app is what every subcommand needs once config and flags are resolved.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	table   engine.Table
	service *chat.Service
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "unibot",
		Short:         "University life assistant answering campus questions from a keyword rule table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.rules, "rules", "", "YAML rule table (overrides UNIBOT_RULES_FILE)")
	cmd.PersistentFlags().DurationVar(&flags.delay, "delay", 0, "thinking delay before each reply (overrides UNIBOT_THINKING_DELAY)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides UNIBOT_LOG_LEVEL)")
	cmd.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "seed for fallback replies (overrides UNIBOT_SEED)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newChatCmd(flags))
	cmd.AddCommand(newAskCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cmd *cobra.Command, flags *rootFlags, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("rules") {
		cfg.RulesFile = flags.rules
	}
	if pf.Changed("delay") {
		cfg.ThinkingDelay = flags.delay
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := logger.New(logOut, cfg.LogLevel)

	table, err := engine.LoadTable(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	var opts []engine.Option
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	eng, err := engine.NewFromTable(table, opts...)
	if err != nil {
		return nil, fmt.Errorf("rule table: %w", err)
	}

	source := "built-in"
	if cfg.RulesFile != "" {
		source = cfg.RulesFile
	}
	l.Debug("rule table loaded", "source", source, "rules", len(table.Rules), "fallback", len(table.Fallback))

	return &app{
		cfg:     cfg,
		logger:  l,
		table:   table,
		service: chat.NewService(provider.NewRulesProvider(eng), cfg.ThinkingDelay),
	}, nil
}
