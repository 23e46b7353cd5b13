package main

import (
	"fmt"
	"io"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/guardrail/rewrite"

	"github.com/spf13/cobra"
)

// explainOutput renders an Explanation with terminal styles.
type explainOutput struct {
	guardrail.Explanation
	styles cli.Styles
}

func (e explainOutput) RenderText(w io.Writer) error {
	s := e.styles
	fmt.Fprintf(w, "%s %s", s.Label.Render("mode:"), e.Mode)
	if e.AdviceLanguage != "" {
		fmt.Fprintf(w, " %s", s.Muted.Render("("+string(e.AdviceLanguage)+")"))
	}
	fmt.Fprintln(w)

	for i, sent := range e.Sentences {
		marker := s.Keep.Render(sent.Decision)
		if sent.Decision != rewrite.Keep.String() {
			marker = s.Replace.Render(sent.Decision)
		}
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, marker, sent.Text)
		if sent.Finding != nil {
			fmt.Fprintf(w, "    %s %s: %s\n", s.Muted.Render("matched"), sent.Finding.Kind, sent.Finding.Match)
		}
		if sent.Reflective {
			fmt.Fprintf(w, "    %s\n", s.Muted.Render("reflective"))
		}
	}

	if e.Fallback {
		fmt.Fprintf(w, "%s rewrite was empty, original kept\n", s.Fail.Render("fallback:"))
	}
	_, err := fmt.Fprintf(w, "%s %s\n", s.Label.Render("output:"), e.Output)
	return err
}

func newExplainCmd(a *app) *cobra.Command {
	var (
		user     string
		messages string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "explain [reply]",
		Short: "Show how each sentence of a reply is judged",
		Long: `Run a reply through the guardrail and report, per sentence, whether it was
kept or replaced, which lexicon table matched it, and whether it reads as a
reflection. The final output is printed last.

Examples:
  anchor explain --user "I'm so stressed." "I hear you. You should rest."
  anchor explain --user "What do you think?" --format json "Why not try a walk?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.ParseFormat(format)
			if err != nil {
				return cli.NewCommandError("explain", err)
			}
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			reply, err := readReply(cmd.InOrStdin(), args)
			if err != nil {
				return cli.NewCommandError("explain", err)
			}
			msg, err := resolveUserMessage(user, messages)
			if err != nil {
				return cli.NewCommandError("explain", err)
			}

			exp := p.Explain(reply, msg)
			if f != cli.FormatText {
				return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), exp)
			}
			out := explainOutput{Explanation: exp, styles: cli.NewStyles(cmd.OutOrStdout())}
			return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), out)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&user, "user", "u", "", "the user's last message")
	fl.StringVar(&messages, "messages", "", "JSON transcript file to take the last user message from")
	fl.StringVar(&format, "format", string(cli.FormatText), "output format: text, json, jsonl")
	return cmd
}
