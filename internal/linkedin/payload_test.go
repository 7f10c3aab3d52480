package linkedin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareRequestContent(t *testing.T) {
	tests := []struct {
		name string
		req  ShareRequest
		want ShareContent
	}{
		{"text", ShareRequest{Comment: "hi"}, TextShare{Comment: "hi"}},
		{"text ignores title without url", ShareRequest{Comment: "hi", Title: "T"}, TextShare{Comment: "hi"}},
		{"article", ShareRequest{Comment: "hi", URL: "https://ex.com", Title: "T"}, ArticleShare{Comment: "hi", URL: "https://ex.com", Title: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Content())
		})
	}
}

func TestPersonURN(t *testing.T) {
	assert.Equal(t, "urn:li:person:abc123", PersonURN("abc123"))
	assert.Equal(t, "urn:li:person:abc123", PersonURN("urn:li:person:abc123"))
}

func TestBuildSharePayloadText(t *testing.T) {
	payload := BuildSharePayload("abc123", TextShare{Comment: "hello"})

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"author": "urn:li:person:abc123",
		"lifecycleState": "PUBLISHED",
		"visibility": {"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
		"specificContent": {
			"com.linkedin.ugc.ShareContent": {
				"shareCommentary": {"text": "hello"},
				"shareMediaCategory": "NONE"
			}
		}
	}`, string(data))
}

func TestBuildSharePayloadArticle(t *testing.T) {
	payload := BuildSharePayload("abc123", ShareRequest{Comment: "hello", URL: "https://ex.com", Title: "T"}.Content())

	var decoded map[string]any
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "urn:li:person:abc123", decoded["author"])
	content := decoded["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
	assert.Equal(t, "ARTICLE", content["shareMediaCategory"])
	assert.Equal(t, map[string]any{"text": "hello"}, content["shareCommentary"])

	media := content["media"].([]any)
	require.Len(t, media, 1)
	assert.Equal(t, map[string]any{
		"status":      "READY",
		"originalUrl": "https://ex.com",
		"title":       map[string]any{"text": "T"},
	}, media[0])
}

func TestBuildSharePayloadOptionalFields(t *testing.T) {
	tests := []struct {
		name        string
		share       ArticleShare
		title       bool
		description bool
	}{
		{"neither", ArticleShare{Comment: "c", URL: "https://u"}, false, false},
		{"title only", ArticleShare{Comment: "c", URL: "https://u", Title: "T"}, true, false},
		{"description only", ArticleShare{Comment: "c", URL: "https://u", Description: "D"}, false, true},
		{"both", ArticleShare{Comment: "c", URL: "https://u", Title: "T", Description: "D"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media := BuildSharePayload("u1", tt.share).SpecificContent.ShareContent.Media
			require.Len(t, media, 1)
			assert.Equal(t, tt.share.URL, media[0].OriginalURL)
			if tt.title {
				assert.Equal(t, &Text{Text: tt.share.Title}, media[0].Title)
			} else {
				assert.Nil(t, media[0].Title)
			}
			if tt.description {
				assert.Equal(t, &Text{Text: tt.share.Description}, media[0].Description)
			} else {
				assert.Nil(t, media[0].Description)
			}
		})
	}
}

func TestBuildSharePayloadStableOrder(t *testing.T) {
	share := ArticleShare{Comment: "c", URL: "https://u", Title: "T", Description: "D"}
	first, err := json.Marshal(BuildSharePayload("u1", share))
	require.NoError(t, err)
	second, err := json.Marshal(BuildSharePayload("u1", share))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLegacySharePayload(t *testing.T) {
	body := map[string]any{"text": map[string]any{"text": "hi"}}

	got := LegacySharePayload("abc", body)

	assert.Equal(t, "urn:li:person:abc", got["owner"])
	assert.Equal(t, body["text"], got["text"])
	assert.NotContains(t, body, "owner", "input must not be mutated")
}

func TestLegacySharePayloadNilBody(t *testing.T) {
	got := LegacySharePayload("abc", nil)
	assert.Equal(t, map[string]any{"owner": "urn:li:person:abc"}, got)
}
