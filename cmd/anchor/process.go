package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"anchor-hq/anchor/pkg/cli"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/server/handlers"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxLineBytes bounds one JSONL record in batch mode.
const maxLineBytes = 4 << 20

type processOptions struct {
	user        string
	messages    string
	format      string
	verbose     bool
	input       string
	concurrency int
	progress    bool
}

func newProcessCmd(a *app) *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process [reply]",
		Short: "Post-process assistant replies",
		Long: `Rewrite an assistant reply so it carries no unsolicited advice.

The reply is read from the arguments, or from stdin when none are given. The
user's intent comes from --user, or from the last user turn of a --messages
transcript (a JSON array of {"role", "content"} objects).

With --input, each line of the file is a JSON request in the same shape as
the HTTP API ({"reply", "last_user_message", "messages", "verbose"}) and
one JSON response is written per line, in input order.

Examples:
  anchor process --user "I'm so stressed." "You should try to relax."
  echo "You need to calm down." | anchor process -u "ugh" --format json
  anchor process --input replies.jsonl --concurrency 8 --progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			if opts.input != "" {
				if len(args) > 0 {
					return cli.NewCommandError("process", errors.New("reply arguments cannot be combined with --input"))
				}
				return a.processBatch(cmd, p, opts)
			}
			return a.processOne(cmd, p, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.user, "user", "u", "", "the user's last message")
	f.StringVar(&opts.messages, "messages", "", "JSON transcript file to take the last user message from")
	f.StringVar(&opts.format, "format", string(cli.FormatText), "output format: text, json, jsonl")
	f.BoolVar(&opts.verbose, "verbose", false, "include mode and rewrite counters in JSON output")
	f.StringVarP(&opts.input, "input", "i", "", "JSONL batch file (- for stdin)")
	f.IntVar(&opts.concurrency, "concurrency", runtime.NumCPU(), "parallel workers in batch mode")
	f.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr in batch mode")
	return cmd
}

// processResult pairs the wire response with its text rendering.
type processResult struct {
	handlers.PostprocessResponse
}

func (r processResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Content)
	return err
}

func (a *app) processOne(cmd *cobra.Command, p *guardrail.Pipeline, opts *processOptions, args []string) error {
	format, err := cli.ParseFormat(opts.format)
	if err != nil {
		return cli.NewCommandError("process", err)
	}

	reply, err := readReply(cmd.InOrStdin(), args)
	if err != nil {
		return cli.NewCommandError("process", err)
	}
	user, err := resolveUserMessage(opts.user, opts.messages)
	if err != nil {
		return cli.NewCommandError("process", err)
	}

	res := p.Run(reply, user)
	a.logger.Debug("reply post-processed",
		"mode", res.Mode(),
		"sentences", res.Sentences,
		"replaced", res.Replaced,
		"stripped", res.Stripped,
		"fallback", res.Fallback,
	)

	out := processResult{handlers.NewPostprocessResponse(res, opts.verbose)}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), out)
}

// readReply joins args into one reply, or reads all of in when args is empty.
func readReply(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read reply from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// resolveUserMessage prefers an explicit message over a transcript file.
func resolveUserMessage(user, transcript string) (string, error) {
	if user != "" || transcript == "" {
		return user, nil
	}
	data, err := os.ReadFile(transcript)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	var messages []guardrail.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return "", fmt.Errorf("failed to parse transcript %q: %w", transcript, err)
	}
	return guardrail.LastUserMessage(messages), nil
}

func (a *app) processBatch(cmd *cobra.Command, p *guardrail.Pipeline, opts *processOptions) error {
	in := cmd.InOrStdin()
	if opts.input != "-" {
		file, err := os.Open(opts.input)
		if err != nil {
			return cli.NewCommandError("process", fmt.Errorf("failed to open input: %w", err))
		}
		defer file.Close()
		in = file
	}

	requests, err := readBatch(in)
	if err != nil {
		return cli.NewCommandError("process", err)
	}

	var progress cli.ProgressReporter
	if opts.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
		progress.Start(int64(len(requests)))
	}

	start := time.Now()
	responses, err := runBatch(cmd.Context(), p, requests, opts.concurrency, progress)
	if err != nil {
		if progress != nil {
			progress.Error(err)
		}
		return cli.NewCommandError("process", err)
	}
	if progress != nil {
		progress.Finish()
	}

	formatter := cli.NewFormatter(cli.FormatJSONL)
	w := bufio.NewWriter(cmd.OutOrStdout())
	for _, resp := range responses {
		if err := formatter.FormatTo(w, resp); err != nil {
			return cli.NewCommandError("process", err)
		}
	}
	if err := w.Flush(); err != nil {
		return cli.NewCommandError("process", err)
	}

	a.logger.Info("batch processed",
		"replies", len(responses),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// readBatch decodes one request per non-blank line.
func readBatch(in io.Reader) ([]handlers.PostprocessRequest, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var requests []handlers.PostprocessRequest
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var req handlers.PostprocessRequest
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}
		if req.Reply == nil {
			return nil, fmt.Errorf("line %d: missing required field \"reply\"", line)
		}
		requests = append(requests, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return requests, nil
}

// runBatch processes requests on up to workers goroutines. Responses keep
// the order of requests.
func runBatch(ctx context.Context, p *guardrail.Pipeline, requests []handlers.PostprocessRequest, workers int, progress cli.ProgressReporter) ([]handlers.PostprocessResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = 1
	}

	responses := make([]handlers.PostprocessResponse, len(requests))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range requests {
		if gctx.Err() != nil {
			break
		}
		i := i // per-iteration copy; go.mod targets go 1.21
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			req := &requests[i]
			res := p.Run(*req.Reply, req.UserMessage())
			responses[i] = handlers.NewPostprocessResponse(res, req.Verbose)
			n := done.Add(1)
			if progress != nil {
				progress.Update(n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return responses, nil
}
