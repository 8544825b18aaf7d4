package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/learnx/learnx/core/learn"
)

var _ learn.Api = (*Client)(nil)

func (c *Client) ListPersonalizedFiles(ctx context.Context) ([]learn.PersonalizedFile, error) {
	var files []learn.PersonalizedFile
	err := c.get(ctx, "/student/personalized-files", &files)
	return files, err
}

// PersonalizedFileContent returns the file row plus its raw generated content;
// the content shape varies by generator version, so it stays raw here.
func (c *Client) PersonalizedFileContent(ctx context.Context, id string) (learn.PersonalizedFile, []byte, error) {
	var out struct {
		learn.PersonalizedFile
		Content json.RawMessage `json:"content"`
	}
	if err := c.get(ctx, fmt.Sprintf("/student/personalized-files/%s", id), &out); err != nil {
		return learn.PersonalizedFile{}, nil, err
	}
	return out.PersonalizedFile, out.Content, nil
}

func (c *Client) GeneratePersonalizedFile(ctx context.Context, req learn.GenerateRequest) (learn.PersonalizedFile, error) {
	var pf learn.PersonalizedFile
	err := c.post(ctx, "/generatepersonalizedfilecontent", req, &pf)
	return pf, err
}
