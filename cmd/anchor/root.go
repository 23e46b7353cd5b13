package main

import (
	"fmt"
	"log/slog"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/config"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "anchor.skip-config"

// app holds state shared by every command of one invocation.
type app struct {
	cfgFile  string
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "anchor",
		Short: "Anchor - keeps support replies free of unsolicited advice",
		Long: `Anchor post-processes replies from an emotional-support chat assistant.

Each reply is checked against the user's last message. Unless the user asked
for advice, directive sentences are replaced with non-directive reflections
and banned phrases are removed. Supportive content passes through unchanged.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", config.DefaultConfigPath, "config file path")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "dotenv file with ANCHOR_* overrides")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newProcessCmd(a),
		newClassifyCmd(a),
		newExplainCmd(a),
		newLexiconCmd(a),
		newPromptCmd(),
		newServeCmd(a),
		newVersionCmd(),
		newCompletionCmd(),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// load reads the env file and configuration and installs the logger. A
// missing config file at the default path falls back to built-in defaults.
func (a *app) load(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	flags := cmd.Flags()
	if err := config.LoadEnvFile(a.envFile, flags.Changed("env-file")); err != nil {
		return cli.NewConfigError("env-file", err.Error())
	}

	var err error
	if flags.Changed("config") {
		a.cfg, err = config.LoadConfigWithEnvOverrides(a.cfgFile)
	} else {
		a.cfg, err = config.LoadOrDefault(a.cfgFile)
	}
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	if a.logLevel != "" {
		a.cfg.Telemetry.Logging.Level = a.logLevel
	}

	logCfg := logging.FromConfig(a.cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	a.logger, err = logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(a.logger)
	return nil
}

// pipeline builds the guardrail pipeline from the loaded configuration.
func (a *app) pipeline() (*guardrail.Pipeline, error) {
	lex, err := a.cfg.Guardrail.BuildLexicon()
	if err != nil {
		return nil, cli.NewConfigError("guardrail", fmt.Sprintf("failed to build lexicon: %v", err))
	}
	return guardrail.New(lex), nil
}
