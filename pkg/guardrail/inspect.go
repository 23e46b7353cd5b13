package guardrail

import (
	"fmt"
	"strings"

	"anchor-hq/anchor/pkg/guardrail/detect"
	"anchor-hq/anchor/pkg/guardrail/intent"
	"anchor-hq/anchor/pkg/guardrail/lexicon"
	"anchor-hq/anchor/pkg/guardrail/rewrite"
	"anchor-hq/anchor/pkg/guardrail/segment"
)

// SentenceReport describes how one sentence of a reply was judged.
type SentenceReport struct {
	Text       string          `json:"text"`
	Decision   string          `json:"decision"`
	Violating  bool            `json:"violating"`
	Finding    *detect.Finding `json:"finding,omitempty"`
	Reflective bool            `json:"reflective"`
}

// Explanation is a per-sentence account of a pipeline run.
type Explanation struct {
	Mode           string           `json:"mode"`
	Flags          intent.Flags     `json:"flags"`
	AdviceLanguage lexicon.Language `json:"advice_language,omitempty"`
	Sentences      []SentenceReport `json:"sentences"`
	Output         string           `json:"output"`
	Fallback       bool             `json:"fallback"`
}

// Explain runs the pipeline and reports, for each sentence, whether it
// violated the policy, which table matched, and whether it was replaced.
func (p *Pipeline) Explain(rawReply, lastUserMessage string) Explanation {
	res := p.Run(rawReply, lastUserMessage)
	exp := Explanation{
		Mode:      res.Mode(),
		Flags:     res.Flags,
		Sentences: []SentenceReport{},
		Output:    res.Text,
		Fallback:  res.Fallback,
	}
	if res.Passthrough {
		return exp
	}
	if lang, ok := p.classifier.AdviceLanguage(lastUserMessage); ok {
		exp.AdviceLanguage = lang
	}

	sentences := segment.Segment(rawReply)
	decisions := p.rewriter.RewriteDetailed(sentences, res.Flags.AskedForAdvice, res.Flags.AskedForPerspective).Decisions
	for i, s := range sentences {
		report := SentenceReport{
			Text:       s,
			Decision:   rewrite.Keep.String(),
			Reflective: p.detector.IsReflectiveOnly(s),
		}
		if f, ok := p.detector.Explain(s); ok {
			report.Violating = true
			report.Finding = &f
		}
		if i < len(decisions) {
			report.Decision = decisions[i].String()
		}
		exp.Sentences = append(exp.Sentences, report)
	}
	return exp
}

var selfCheckProbes = []string{
	"I hear you. You should try to relax. From a rational perspective, it's not a big deal.",
	"You need to calm down. It might help to take a walk.",
	"Have you considered talking to your manager? One option is to write it down.",
	"Just stay positive. Why not try journaling?",
}

// SelfCheck runs fixed probe replies through strict mode and fails when an
// output is empty or still carries banned phrases or action verbs. A lexicon
// whose reflections or closers are themselves directive fails here.
func (p *Pipeline) SelfCheck() error {
	for i, probe := range selfCheckProbes {
		out := p.PostProcess(probe, Options{})
		switch {
		case strings.TrimSpace(out) == "":
			return fmt.Errorf("guardrail self-check: probe %d produced empty output", i)
		case p.lex.ContainsBannedPhrase(out):
			return fmt.Errorf("guardrail self-check: probe %d output contains a banned phrase: %q", i, out)
		case p.ContainsActionVerbs(out):
			return fmt.Errorf("guardrail self-check: probe %d output contains action verbs: %q", i, out)
		}
	}
	return nil
}
