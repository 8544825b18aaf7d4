package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/learnx/learnx/core"
)

var ErrUnknownSuggestion = errors.New("no such suggestion")

type (
	// Api is the slice of the backend the suggestion overlay consumes.
	Api interface {
		Suggestions(ctx context.Context, documentID, userID string) ([]Suggestion, error)
	}

	// Service is the suggestion-overlay view-model: it projects fetched
	// suggestions onto the rendered document's text nodes and keeps the
	// projections consistent as the reader accepts edits.
	Service struct {
		api    Api
		logger core.Logger

		nodes      []string
		highlights []Highlight
	}
)

func NewService(api Api, logger core.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Load fetches suggestions for a document and projects them onto the given
// text nodes. A fetch failure leaves the overlay empty.
func (svc *Service) Load(ctx context.Context, documentID, userID string, nodes []string) error {
	svc.nodes = append([]string(nil), nodes...)
	svc.highlights = nil

	suggestions, err := svc.api.Suggestions(ctx, documentID, userID)
	if err != nil {
		svc.logger.Error("fetching suggestions", err)
		return err
	}
	for _, s := range suggestions {
		svc.highlights = append(svc.highlights, Highlight{
			Suggestion: s,
			Span:       svc.project(s.OriginalText),
		})
	}
	return nil
}

// project finds the first occurrence of text across the nodes in order. An
// unmatched suggestion gets the zero span so it renders in the side list but
// never as a highlight.
func (svc *Service) project(text string) Span {
	if text == "" {
		return Span{}
	}
	for i, node := range svc.nodes {
		if at := strings.Index(node, text); at >= 0 {
			return Span{Node: i, Start: at, End: at + len(text)}
		}
	}
	return Span{}
}

// Highlights returns the current projections in fetch order.
func (svc *Service) Highlights() []Highlight {
	out := make([]Highlight, len(svc.highlights))
	copy(out, svc.highlights)
	return out
}

// Nodes returns the document text with accepted edits applied.
func (svc *Service) Nodes() []string {
	out := make([]string, len(svc.nodes))
	copy(out, svc.nodes)
	return out
}

// Apply accepts a suggestion: the projected span is replaced with the
// suggested text, the highlight is removed, and every remaining span on the
// same node after the edit shifts by the length delta. An unmatched
// suggestion is simply dismissed.
func (svc *Service) Apply(id string) error {
	idx := -1
	for i, h := range svc.highlights {
		if h.Suggestion.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownSuggestion
	}
	h := svc.highlights[idx]
	svc.highlights = append(svc.highlights[:idx], svc.highlights[idx+1:]...)
	if h.Span.IsZero() {
		return nil
	}

	node := svc.nodes[h.Span.Node]
	svc.nodes[h.Span.Node] = node[:h.Span.Start] + h.Suggestion.SuggestedText + node[h.Span.End:]

	delta := len(h.Suggestion.SuggestedText) - (h.Span.End - h.Span.Start)
	for i := range svc.highlights {
		s := &svc.highlights[i].Span
		if s.IsZero() || s.Node != h.Span.Node || s.Start < h.Span.End {
			continue
		}
		s.Start += delta
		s.End += delta
	}
	return nil
}

// Dismiss drops a suggestion without editing the document.
func (svc *Service) Dismiss(id string) error {
	for i, h := range svc.highlights {
		if h.Suggestion.ID == id {
			svc.highlights = append(svc.highlights[:i], svc.highlights[i+1:]...)
			return nil
		}
	}
	return ErrUnknownSuggestion
}
