package guardrail

import (
	"strings"

	"anchor-hq/anchor/pkg/guardrail/detect"
	"anchor-hq/anchor/pkg/guardrail/intent"
	"anchor-hq/anchor/pkg/guardrail/lexicon"
	"anchor-hq/anchor/pkg/guardrail/rewrite"
	"anchor-hq/anchor/pkg/guardrail/segment"
)

// Pipeline orchestrates classification, segmentation and rewriting.
// It holds only read-only state and is safe for concurrent use.
type Pipeline struct {
	lex        *lexicon.Lexicon
	classifier *intent.Classifier
	detector   *detect.Detector
	rewriter   *rewrite.Rewriter
}

// New creates a pipeline backed by lex. A nil lex uses the default lexicon.
func New(lex *lexicon.Lexicon) *Pipeline {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Pipeline{
		lex:        lex,
		classifier: intent.NewClassifier(lex),
		detector:   detect.New(lex),
		rewriter:   rewrite.New(lex),
	}
}

// Lexicon returns the lexicon the pipeline was built with.
func (p *Pipeline) Lexicon() *lexicon.Lexicon {
	return p.lex
}

// Process returns the policy-compliant version of rawReply given the user's
// last message. Empty or whitespace-only replies are returned unchanged.
func (p *Pipeline) Process(rawReply, lastUserMessage string) string {
	return p.Run(rawReply, lastUserMessage).Text
}

// Run is like Process and reports what the pipeline did.
func (p *Pipeline) Run(rawReply, lastUserMessage string) Result {
	if strings.TrimSpace(rawReply) == "" {
		return Result{Text: rawReply, Passthrough: true}
	}

	flags := p.classifier.Classify(lastUserMessage)
	res := p.run(rawReply, flags)
	res.Flags = flags
	return res
}

// Classify derives intent flags from the user's last message and, when advice
// was requested, the language of the matching request pattern.
func (p *Pipeline) Classify(lastUserMessage string) (intent.Flags, lexicon.Language) {
	flags := p.classifier.Classify(lastUserMessage)
	lang, _ := p.classifier.AdviceLanguage(lastUserMessage)
	return flags, lang
}

// OptionsFor derives post-processing options from the user's last message.
func (p *Pipeline) OptionsFor(lastUserMessage string) Options {
	flags := p.classifier.Classify(lastUserMessage)
	return Options{
		UserAskedForAdvice:      flags.AskedForAdvice,
		UserAskedForPerspective: flags.AskedForPerspective,
	}
}

// PostProcess runs the rewrite with explicit intent options instead of
// classifying a user message.
func (p *Pipeline) PostProcess(text string, opts Options) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	return p.run(text, intent.Flags{
		AskedForAdvice:      opts.UserAskedForAdvice,
		AskedForPerspective: opts.UserAskedForPerspective,
	}).Text
}

// ContainsActionVerbs reports whether text contains any action-verb or
// directive phrasing.
func (p *Pipeline) ContainsActionVerbs(text string) bool {
	return p.detector.ContainsActionVerbs(text)
}

func (p *Pipeline) run(text string, flags intent.Flags) Result {
	sentences := segment.Segment(text)
	out := p.rewriter.RewriteDetailed(sentences, flags.AskedForAdvice, flags.AskedForPerspective)

	res := Result{
		Text:      out.Text,
		Flags:     flags,
		Sentences: len(sentences),
		Replaced:  out.Replaced,
		Stripped:  out.Stripped,
		Fallback:  out.Fallback,
	}
	if strings.TrimSpace(res.Text) == "" {
		res.Text = strings.TrimSpace(text)
		res.Fallback = true
	}
	return res
}

var defaultPipeline = New(nil)

// Default returns the pipeline built on the default lexicon.
func Default() *Pipeline {
	return defaultPipeline
}

// Process runs the default pipeline.
func Process(rawReply, lastUserMessage string) string {
	return defaultPipeline.Process(rawReply, lastUserMessage)
}

// ContainsActionVerbs checks text against the default lexicon's action-verb
// diagnostic.
func ContainsActionVerbs(text string) bool {
	return defaultPipeline.ContainsActionVerbs(text)
}

// LastUserMessage returns the content of the most recent user message in
// messages, or "" if there is none.
func LastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
