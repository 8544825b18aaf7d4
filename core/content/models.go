package content

import (
	"io"

	"github.com/learnx/learnx/core"
)

// Module is a named subdivision of a course. The server returns modules in
// its own order; the client renders them as-is (order is not contractual).
type Module struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FileSummary describes an uploaded file; binary content is never held
// beyond an upload buffer or a transient preview.
type FileSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename,omitempty"`
}

// NewModule contains information needed to create a new Module.
type NewModule struct {
	Title string `json:"title" validate:"required"`
}

func (nm *NewModule) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	return core.Validate.Struct(nm)
}

// Upload is one pending multipart upload. Title is only sent for audio
// uploads, matching the original form fields.
type Upload struct {
	Filename    string
	Title       string
	ContentType string
	Body        io.Reader
}

// Uploaded is the backend's answer to a successful upload; Transcription is
// set when the backend transcribed an audio file.
type Uploaded struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Transcription string `json:"transcription,omitempty"`
}

// FileContent is a fetched binary payload for previewing.
type FileContent struct {
	Data        []byte
	ContentType string
	Filename    string
}

var audioExtensions = map[string]bool{
	".mp3": true, ".mp4": true, ".wav": true, ".m4a": true, ".aac": true,
	".ogg": true, ".flac": true, ".wma": true, ".aiff": true,
}

// IsMedia reports whether the file previews as audio/video rather than as a
// document, going by the title's extension the way the original view does.
func (f FileSummary) IsMedia() bool {
	title := core.CleanString(f.Title, true /* lower */)
	for ext := range audioExtensions {
		if len(title) >= len(ext) && title[len(title)-len(ext):] == ext {
			return true
		}
	}
	return false
}
