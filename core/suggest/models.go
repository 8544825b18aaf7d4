package suggest

// Suggestion is one proposed edit fetched for a document.
type Suggestion struct {
	ID            string `json:"id"`
	OriginalText  string `json:"originalText"`
	SuggestedText string `json:"suggestedText"`
}

// Span is a half-open [Start, End) character range within a text node. The
// zero Span marks a suggestion whose original text was not found.
type Span struct {
	Node  int
	Start int
	End   int
}

func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Highlight pairs a suggestion with the span it was projected onto.
type Highlight struct {
	Suggestion Suggestion
	Span       Span
}
