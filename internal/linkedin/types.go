package linkedin

import (
	"context"
	"strings"
)

// PersonURNPrefix is the namespace LinkedIn uses for member identifiers.
const PersonURNPrefix = "urn:li:person:"

// ShareRequest is the caller-facing input for a standard share.
// Empty fields are treated as absent.
type ShareRequest struct {
	Comment     string
	URL         string
	Title       string
	Description string
}

// ShareContent is either a TextShare or an ArticleShare.
type ShareContent interface {
	shareContent()
}

// TextShare is a commentary-only post.
type TextShare struct {
	Comment string
}

// ArticleShare is a post with a link preview.
type ArticleShare struct {
	Comment     string
	URL         string
	Title       string
	Description string
}

func (TextShare) shareContent() {}
func (ArticleShare) shareContent() {}

// Content selects the variant for the request. The URL alone decides.
func (r ShareRequest) Content() ShareContent {
	if r.URL != "" {
		return ArticleShare{
			Comment:     r.Comment,
			URL:         r.URL,
			Title:       r.Title,
			Description: r.Description,
		}
	}
	return TextShare{Comment: r.Comment}
}

// UploadRegistration is the part of a registerUpload response the upload needs.
type UploadRegistration struct {
	UploadURL string
	Asset     string
}

// Transport performs authenticated requests against the API. Paths passed to
// Get and Post are relative to the API base; PostBinary takes an absolute URL.
type Transport interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
	PostBinary(ctx context.Context, url string, data []byte, headers map[string]string) ([]byte, error)
}

// PersonURN returns the canonical member URN for id. As a deliberate
// leniency, an id that already carries the urn:li:person: prefix is returned
// unchanged instead of being prefixed a second time.
func PersonURN(id string) string {
	if strings.HasPrefix(id, PersonURNPrefix) {
		return id
	}
	return PersonURNPrefix + id
}
