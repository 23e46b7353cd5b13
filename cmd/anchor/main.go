// Anchor post-processes replies from an emotional-support chat assistant so
// that they never contain unsolicited directive advice.
//
// Usage:
//
//	# Rewrite one reply given the user's last message
//	anchor process --user "I'm so stressed today." "You should try to relax."
//
//	# Show how each sentence was judged
//	anchor explain --user "I'm so stressed today." "I hear you. You should rest."
//
//	# Process a JSONL file of {"reply", "last_user_message"} records
//	anchor process --input replies.jsonl --progress
//
//	# Check a lexicon overlay before deploying it
//	anchor lexicon lint lexicon.yaml
//
//	# Run the HTTP service
//	anchor serve --config anchor.yaml
package main

import (
	"fmt"
	"os"

	"anchor-hq/anchor/pkg/cli"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
