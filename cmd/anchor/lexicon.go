package main

import (
	"errors"
	"fmt"
	"io"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/guardrail/lexicon"

	"github.com/spf13/cobra"
)

// errLintFailed is returned when a lexicon does not pass lint.
var errLintFailed = errors.New("lexicon failed lint")

func newLexiconCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and validate guardrail lexicons",
		Long: `Inspect and validate the phrase and pattern tables that drive the guardrail.

A lexicon file is a YAML overlay: each table it names replaces the built-in
table of the same name, and tables it omits keep their defaults.`,
	}
	cmd.AddCommand(newLexiconLintCmd(a), newLexiconShowCmd(a))
	return cmd
}

// lintResult is the outcome of linting one lexicon.
type lintResult struct {
	Source    string `json:"source"`
	Compiled  bool   `json:"compiled"`
	SelfCheck bool   `json:"self_check"`
	Error     string `json:"error,omitempty"`

	styles cli.Styles
}

func (r lintResult) Valid() bool { return r.Compiled && r.SelfCheck }

func (r lintResult) RenderText(w io.Writer) error {
	s := r.styles
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("lexicon:"), r.Source)
	fmt.Fprintf(w, "  %s compile\n", s.Check(r.Compiled))
	fmt.Fprintf(w, "  %s self-check\n", s.Check(r.SelfCheck))
	if r.Error != "" {
		fmt.Fprintf(w, "  %s\n", s.Fail.Render(r.Error))
	}
	return nil
}

func newLexiconLintCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Compile a lexicon and run the guardrail self-check",
		Long: `Compile a lexicon overlay and run fixed probe replies through it. Linting
fails when a pattern does not compile, a table is empty, or a reflection
starter or closer is itself directive.

Without a file, the lexicon from the loaded configuration is linted.

Examples:
  anchor lexicon lint lexicon.yaml
  anchor lexicon lint --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.ParseFormat(format)
			if err != nil {
				return cli.NewCommandError("lexicon lint", err)
			}

			result := lintLexicon(a, args)
			result.styles = cli.NewStyles(cmd.OutOrStdout())
			if err := cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid() {
				return cli.NewCommandError("lexicon lint", errLintFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "output format: text, json, jsonl")
	return cmd
}

func lintLexicon(a *app, args []string) lintResult {
	var (
		lex *lexicon.Lexicon
		err error
	)
	result := lintResult{Source: "configuration"}
	if len(args) == 1 {
		result.Source = args[0]
		lex, err = lexicon.LoadFile(args[0])
	} else {
		lex, err = a.cfg.Guardrail.BuildLexicon()
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Compiled = true

	if err := guardrail.New(lex).SelfCheck(); err != nil {
		result.Error = err.Error()
		return result
	}
	result.SelfCheck = true
	return result
}

func newLexiconShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective lexicon tables as YAML",
		Long: `Print the lexicon the guardrail would use with the loaded configuration,
after the overlay file and extra banned phrases are applied. The output is a
complete overlay and can be edited and passed back with guardrail.lexicon_file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.cfg.Guardrail.BuildLexicon()
			if err != nil {
				return cli.NewConfigError("guardrail", err.Error())
			}
			data, err := lex.Tables().Marshal()
			if err != nil {
				return cli.NewCommandError("lexicon show", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
