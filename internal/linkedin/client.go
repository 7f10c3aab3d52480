package linkedin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blacktop/lipost/internal/logutil"
)

const (
	profileEndpoint      = "/me"
	ugcPostsEndpoint     = "/ugcPosts"
	legacySharesEndpoint = "/shares"
)

// Client issues profile and share calls through a Transport. It holds no
// per-call state and is safe for concurrent use if the Transport is.
type Client struct {
	transport Transport
}

// New returns a Client using t for every request.
func New(t Transport) *Client {
	return &Client{transport: t}
}

// Name returns the provider identifier.
func (c *Client) Name() string { return providerName }

// Profile returns the authenticated member's profile as sent by the API.
func (c *Client) Profile(ctx context.Context) (json.RawMessage, error) {
	body, err := c.transport.Get(ctx, profileEndpoint)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return body, nil
}

// Share publishes a text or article post for the member identified by urn.
// Shares are never retried; a retry could publish the post twice.
func (c *Client) Share(ctx context.Context, urn string, req ShareRequest) (json.RawMessage, error) {
	if err := Validate(urn, req); err != nil {
		return nil, err
	}

	payload := BuildSharePayload(urn, req.Content())
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode share: %w", err)
	}

	logutil.Debugf("posting share: category=%s", payload.SpecificContent.ShareContent.ShareMediaCategory)
	body, err := c.transport.Post(ctx, ugcPostsEndpoint, data)
	if err != nil {
		return nil, fmt.Errorf("post share: %w", err)
	}
	logutil.Debugf("share posted successfully")

	return body, nil
}

// ShareLegacy posts body to the older /shares endpoint with the owner field
// set. body is not modified.
func (c *Client) ShareLegacy(ctx context.Context, urn string, body map[string]any) (json.RawMessage, error) {
	if err := validateURN(urn); err != nil {
		return nil, err
	}

	data, err := json.Marshal(LegacySharePayload(urn, body))
	if err != nil {
		return nil, fmt.Errorf("encode share: %w", err)
	}

	resp, err := c.transport.Post(ctx, legacySharesEndpoint, data)
	if err != nil {
		return nil, fmt.Errorf("post legacy share: %w", err)
	}
	return resp, nil
}

// RegisterUpload reserves an image upload slot for the member.
func (c *Client) RegisterUpload(ctx context.Context, urn string) (UploadRegistration, error) {
	if err := validateURN(urn); err != nil {
		return UploadRegistration{}, err
	}

	data, err := json.Marshal(newRegisterUploadBody(urn))
	if err != nil {
		return UploadRegistration{}, fmt.Errorf("encode upload registration: %w", err)
	}

	body, err := c.transport.Post(ctx, registerUploadEndpoint, data)
	if err != nil {
		return UploadRegistration{}, fmt.Errorf("register upload: %w", err)
	}

	reg, err := ParseUploadRegistration(body)
	if err != nil {
		return UploadRegistration{}, fmt.Errorf("register upload: %w", err)
	}
	logutil.Debugf("upload registered: asset=%s", reg.Asset)

	return reg, nil
}

// ShareImage registers an upload, sends the image bytes as image/jpeg and
// returns the asset URN. The bytes are not inspected beyond rejecting an
// empty image. Referencing the asset in a post is left to the caller. A slot
// that was registered but never filled is not cleaned up.
func (c *Client) ShareImage(ctx context.Context, urn string, image []byte) (string, error) {
	if err := validateURN(urn); err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", invalid(ErrEmptyImage)
	}

	reg, err := c.RegisterUpload(ctx, urn)
	if err != nil {
		return "", err
	}

	logutil.Debugf("uploading image: asset=%s bytes=%d", reg.Asset, len(image))
	if _, err := c.transport.PostBinary(ctx, reg.UploadURL, image, map[string]string{
		"Content-Type": ImageContentType,
	}); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	logutil.Debugf("image uploaded: asset=%s", reg.Asset)

	return reg.Asset, nil
}
