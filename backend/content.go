package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/pkg/errors"

	"github.com/learnx/learnx/core/content"
	"github.com/learnx/learnx/core/session"
)

var _ content.Api = (*Client)(nil)

// CourseModules lists a course's modules. The backend has answered both with
// a bare array and wrapped as {"modules": [...]}; both decode.
func (c *Client) CourseModules(ctx context.Context, role session.Role, courseID string) ([]content.Module, error) {
	path := fmt.Sprintf("/%s/courses/%s/modules", role.PathPrefix(), courseID)

	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return decodeModules(raw)
}

func decodeModules(raw json.RawMessage) ([]content.Module, error) {
	var modules []content.Module
	if err := json.Unmarshal(raw, &modules); err == nil {
		return modules, nil
	}
	var wrapped struct {
		Modules []content.Module `json:"modules"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, errors.Wrap(err, "decoding modules")
	}
	return wrapped.Modules, nil
}

func (c *Client) CreateModule(ctx context.Context, courseID string, nm content.NewModule) (content.Module, error) {
	var mod content.Module
	err := c.post(ctx, fmt.Sprintf("/instructor/courses/%s/modules", courseID), nm, &mod)
	return mod, err
}

func (c *Client) DeleteModule(ctx context.Context, moduleID string) error {
	return c.delete(ctx, fmt.Sprintf("/instructor/modules/%s", moduleID))
}

func (c *Client) ModuleFiles(ctx context.Context, role session.Role, moduleID string) ([]content.FileSummary, error) {
	var files []content.FileSummary
	err := c.get(ctx, fmt.Sprintf("/%s/modules/%s/files", role.PathPrefix(), moduleID), &files)
	return files, err
}

// UploadModuleFile sends the file as multipart form data under the "file"
// part, with an optional "title" field the way the upload form does.
func (c *Client) UploadModuleFile(ctx context.Context, moduleID string, up content.Upload) (content.Uploaded, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, up.Filename))
	if up.ContentType != "" {
		hdr.Set("Content-Type", up.ContentType)
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		return content.Uploaded{}, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, up.Body); err != nil {
		return content.Uploaded{}, errors.Wrap(err, "copying upload body")
	}
	if up.Title != "" {
		if err := w.WriteField("title", up.Title); err != nil {
			return content.Uploaded{}, errors.Wrap(err, "writing title field")
		}
	}
	if err := w.Close(); err != nil {
		return content.Uploaded{}, errors.Wrap(err, "closing multipart body")
	}

	path := fmt.Sprintf("/instructor/modules/%s/files", moduleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return content.Uploaded{}, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, _, err := c.do(req)
	if err != nil {
		return content.Uploaded{}, err
	}
	var uploaded content.Uploaded
	if err := json.Unmarshal(data, &uploaded); err != nil {
		return content.Uploaded{}, errors.Wrap(err, "decoding upload response")
	}
	return uploaded, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.delete(ctx, fmt.Sprintf("/instructor/files/%s", fileID))
}

// FileContent fetches the raw bytes of a file for previewing. The filename
// comes from the Content-Disposition header when the backend sets one.
func (c *Client) FileContent(ctx context.Context, role session.Role, fileID string) (content.FileContent, error) {
	path := fmt.Sprintf("/%s/files/%s/content", role.PathPrefix(), fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return content.FileContent{}, errors.Wrap(err, "creating request")
	}

	data, hdrs, err := c.do(req)
	if err != nil {
		return content.FileContent{}, err
	}
	fc := content.FileContent{
		Data:        data,
		ContentType: hdrs.Get("Content-Type"),
	}
	if _, params, err := mime.ParseMediaType(hdrs.Get("Content-Disposition")); err == nil {
		fc.Filename = params["filename"]
	}
	return fc, nil
}
