package linkedin

import "maps"

// Wire constants for the UGC post schema.
const (
	lifecyclePublished = "PUBLISHED"
	visibilityPublic   = "PUBLIC"
	mediaStatusReady   = "READY"

	categoryNone    = "NONE"
	categoryArticle = "ARTICLE"
)

// SharePayload is the /ugcPosts request body. Field order matches the
// serialized order.
type SharePayload struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	Visibility      Visibility      `json:"visibility"`
	SpecificContent SpecificContent `json:"specificContent"`
}

// Visibility holds the member network visibility marker.
type Visibility struct {
	MemberNetwork string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// SpecificContent wraps the share content under its namespaced key.
type SpecificContent struct {
	ShareContent UGCShareContent `json:"com.linkedin.ugc.ShareContent"`
}

// UGCShareContent is the commentary plus optional media.
type UGCShareContent struct {
	ShareCommentary    Text    `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
	Media              []Media `json:"media,omitempty"`
}

// Media describes an article attachment.
type Media struct {
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl"`
	Description *Text  `json:"description,omitempty"`
	Title       *Text  `json:"title,omitempty"`
}

// Text is the {"text": ...} wrapper used throughout the schema.
type Text struct {
	Text string `json:"text"`
}

func textOf(s string) *Text {
	if s == "" {
		return nil
	}
	return &Text{Text: s}
}

// BuildSharePayload maps content onto the UGC post schema. It assumes the
// input already passed Validate.
func BuildSharePayload(urn string, content ShareContent) SharePayload {
	payload := SharePayload{
		Author:         PersonURN(urn),
		LifecycleState: lifecyclePublished,
		Visibility:     Visibility{MemberNetwork: visibilityPublic},
	}

	switch c := content.(type) {
	case ArticleShare:
		payload.SpecificContent.ShareContent = UGCShareContent{
			ShareCommentary:    Text{Text: c.Comment},
			ShareMediaCategory: categoryArticle,
			Media: []Media{{
				Status:      mediaStatusReady,
				OriginalURL: c.URL,
				Description: textOf(c.Description),
				Title:       textOf(c.Title),
			}},
		}
	case TextShare:
		payload.SpecificContent.ShareContent = UGCShareContent{
			ShareCommentary:    Text{Text: c.Comment},
			ShareMediaCategory: categoryNone,
		}
	}

	return payload
}

// LegacySharePayload returns a copy of body with the owner set to the
// member URN. body itself is left untouched.
func LegacySharePayload(urn string, body map[string]any) map[string]any {
	out := make(map[string]any, len(body)+1)
	maps.Copy(out, body)
	out["owner"] = PersonURN(urn)
	return out
}
