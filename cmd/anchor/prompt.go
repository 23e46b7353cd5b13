package main

import (
	"fmt"

	"anchor-hq/anchor/pkg/persona"

	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var priorities bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the system prompt sent to the upstream model",
		Long: `Print the system prompt that defines the assistant's identity, purpose,
non-clinical boundaries and conversational style.

Examples:
  anchor prompt
  anchor prompt --priorities`,
		Annotations: map[string]string{skipConfig: "true"},
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if priorities {
				for i, p := range persona.Priorities() {
					fmt.Fprintf(out, "%d. %s\n", i+1, p)
				}
				return
			}
			fmt.Fprintln(out, persona.BuildSystemPrompt())
		},
	}

	cmd.Flags().BoolVar(&priorities, "priorities", false, "list response priorities in order instead")
	return cmd
}
