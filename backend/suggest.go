package backend

import (
	"context"
	"net/url"

	"github.com/learnx/learnx/core/suggest"
)

var _ suggest.Api = (*Client)(nil)

// Suggestions lists the proposed edits for a document. The user rides along
// in the X-User-Id header rather than the session, matching the endpoint's
// contract.
func (c *Client) Suggestions(ctx context.Context, documentID, userID string) ([]suggest.Suggestion, error) {
	var suggestions []suggest.Suggestion
	path := "/suggestions?documentId=" + url.QueryEscape(documentID)
	err := c.get(ctx, path, &suggestions, header{"X-User-Id", userID})
	return suggestions, err
}
