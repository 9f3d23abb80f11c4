package models

// Turn roles. Histories strictly alternate user/assistant, user first.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a generation conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History is an append-only, caller-owned conversation log. The
// orchestrator never mutates a history it was given; it works on copies.
type History []Turn

// Clone returns an independent copy so appends never alias the caller's slice.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Alternates reports whether the history is a valid user-first,
// strictly alternating turn sequence.
func (h History) Alternates() bool {
	for i, t := range h {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if t.Role != want {
			return false
		}
	}
	return true
}

// Usage carries the model's token accounting. Surfaced to the caller
// for cost display; never feeds back into pipeline logic.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ModelReply is one assistant response from the generative model endpoint.
type ModelReply struct {
	Text  string
	Usage Usage
}

// Extraction outcomes for ExtractedProgram.Status.
const (
	ExtractionParsed = "parsed"
	ExtractionRaw    = "raw"
)

// ExtractedProgram is the result of scanning an assistant reply for an
// embedded program document. Extraction failure is a normal outcome, not
// an error: Status "raw" carries the best candidate text found (the whole
// reply when nothing looked like a document).
type ExtractedProgram struct {
	Status   string         `json:"status"` // parsed | raw
	Document map[string]any `json:"document,omitempty"`
	Text     string         `json:"text,omitempty"`
}
