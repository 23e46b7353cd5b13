package main

import (
	"fmt"
	"io"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/guardrail/lexicon"

	"github.com/spf13/cobra"
)

// classification is the intent derived from one user message.
type classification struct {
	Message        string           `json:"message"`
	Advice         bool             `json:"advice"`
	Perspective    bool             `json:"perspective"`
	AdviceLanguage lexicon.Language `json:"advice_language,omitempty"`
	Mode           string           `json:"mode"`
}

func (c classification) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "advice: %t\nperspective: %t\nmode: %s\n", c.Advice, c.Perspective, c.Mode)
	if err == nil && c.AdviceLanguage != "" {
		_, err = fmt.Fprintf(w, "advice language: %s\n", c.AdviceLanguage)
	}
	return err
}

func newClassifyCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "classify <message>",
		Short: "Show the intent detected in a user message",
		Long: `Report whether a user message asks for advice, for the assistant's
perspective, or neither, and which processing mode a reply would get.

Examples:
  anchor classify "What should I do?"
  anchor classify "你怎么看" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.ParseFormat(format)
			if err != nil {
				return cli.NewCommandError("classify", err)
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}

			flags, lang := p.Classify(args[0])
			out := classification{
				Message:        args[0],
				Advice:         flags.AskedForAdvice,
				Perspective:    flags.AskedForPerspective,
				AdviceLanguage: lang,
				Mode:           guardrail.Result{Flags: flags}.Mode(),
			}
			return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "output format: text, json, jsonl")
	return cmd
}
