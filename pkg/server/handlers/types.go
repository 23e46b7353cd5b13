package handlers

import "anchor-hq/anchor/pkg/guardrail"

// PostprocessRequest is the body of POST /v1/postprocess.
//
// The user's intent comes from LastUserMessage when present, otherwise from
// the most recent user turn in Messages.
type PostprocessRequest struct {
	// Reply is the complete assistant reply from the upstream model. It must
	// be present; an empty string is passed through unchanged.
	Reply *string `json:"reply"`

	// LastUserMessage is the user's most recent message.
	LastUserMessage *string `json:"last_user_message,omitempty"`

	// Messages is the chat transcript, used when LastUserMessage is absent.
	Messages []guardrail.Message `json:"messages,omitempty"`

	// Verbose adds the intent mode and rewrite counters to the response.
	Verbose bool `json:"verbose,omitempty"`
}

// UserMessage resolves the message the intent is classified from.
func (r *PostprocessRequest) UserMessage() string {
	if r.LastUserMessage != nil {
		return *r.LastUserMessage
	}
	return guardrail.LastUserMessage(r.Messages)
}

// PostprocessResponse is the body returned by POST /v1/postprocess.
type PostprocessResponse struct {
	Content     string `json:"content"`
	Advice      bool   `json:"advice"`
	Perspective bool   `json:"perspective"`
	Replaced    int    `json:"replaced"`

	*Details
}

// Details are returned when the request sets verbose.
type Details struct {
	Mode      string `json:"mode"`
	Sentences int    `json:"sentences"`
	Stripped  int    `json:"stripped"`
	Fallback  bool   `json:"fallback"`
}

// NewPostprocessResponse converts a pipeline result into the wire response.
func NewPostprocessResponse(res guardrail.Result, verbose bool) PostprocessResponse {
	resp := PostprocessResponse{
		Content:     res.Text,
		Advice:      res.Flags.AskedForAdvice,
		Perspective: res.Flags.AskedForPerspective,
		Replaced:    res.Replaced,
	}
	if verbose {
		resp.Details = &Details{
			Mode:      res.Mode(),
			Sentences: res.Sentences,
			Stripped:  res.Stripped,
			Fallback:  res.Fallback,
		}
	}
	return resp
}

// Error codes returned in the JSON error envelope.
const (
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInvalidJSON      = "invalid_json"
	CodeMissingField     = "missing_field"
	CodeBodyTooLarge     = "request_too_large"
)
