package learn

import "encoding/json"

// PersonalizedFile is a generated rendition of a course file tailored to one
// student's profile.
type PersonalizedFile struct {
	ID             string `json:"id"`
	OriginalFileID string `json:"originalFileId"`
	CreatedAt      string `json:"createdAt"`
}

// Subsection is one block of a personalized chapter.
type Subsection struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Chapter is one section of personalized content.
type Chapter struct {
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Subsections []Subsection `json:"subsections"`
}

// Content is the parsed personalized document.
type Content struct {
	Chapters []Chapter
}

// UserProfile is the personalization payload the generator consumes.
type UserProfile struct {
	Role            string `json:"role"`
	Traits          string `json:"traits"`
	LearningStyle   string `json:"learningStyle"`
	Depth           string `json:"depth"`
	Interests       string `json:"interests"`
	Personalization string `json:"personalization"`
	Schedule        string `json:"schedule"`
}

// GenerateRequest is the POST /generatepersonalizedfilecontent body.
type GenerateRequest struct {
	Name        string      `json:"name"`
	Message     string      `json:"message"`
	FileID      string      `json:"fileId"`
	UserProfile UserProfile `json:"userProfile"`
}

// ParseContent decodes generated content defensively: the generator has
// emitted chapters as plain strings, as objects with string subsections, and
// as the full nested shape. Anything unrecognized becomes text so the reader
// renders something rather than nothing.
func ParseContent(raw []byte) Content {
	var doc struct {
		Chapters []json.RawMessage `json:"chapters"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Chapters) == 0 {
		// Maybe a bare array of chapters.
		if err := json.Unmarshal(raw, &doc.Chapters); err != nil {
			return Content{Chapters: []Chapter{{Summary: string(raw)}}}
		}
	}

	var c Content
	for _, rawCh := range doc.Chapters {
		c.Chapters = append(c.Chapters, parseChapter(rawCh))
	}
	return c
}

func parseChapter(raw json.RawMessage) Chapter {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Chapter{Summary: s}
	}

	var ch struct {
		Title       string            `json:"title"`
		Summary     string            `json:"summary"`
		Subsections []json.RawMessage `json:"subsections"`
	}
	if err := json.Unmarshal(raw, &ch); err != nil {
		return Chapter{Summary: string(raw)}
	}
	out := Chapter{Title: ch.Title, Summary: ch.Summary}
	for _, rawSub := range ch.Subsections {
		var text string
		if err := json.Unmarshal(rawSub, &text); err == nil {
			out.Subsections = append(out.Subsections, Subsection{Text: text})
			continue
		}
		var sub Subsection
		if err := json.Unmarshal(rawSub, &sub); err == nil {
			out.Subsections = append(out.Subsections, sub)
			continue
		}
		out.Subsections = append(out.Subsections, Subsection{Text: string(rawSub)})
	}
	return out
}
