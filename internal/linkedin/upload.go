package linkedin

import (
	"encoding/json"
	"sort"
)

const (
	feedshareImageRecipe   = "urn:li:digitalmediaRecipe:feedshare-image"
	ugcServiceIdentifier   = "urn:li:userGeneratedContent"
	relationshipOwner      = "OWNER"
	httpRequestMechanism   = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"
	registerUploadEndpoint = "/assets?action=registerUpload"
)

// ImageContentType is declared on every image upload, whatever the bytes are.
const ImageContentType = "image/jpeg"

type registerUploadBody struct {
	RegisterUploadRequest registerUploadRequest `json:"registerUploadRequest"`
}

type registerUploadRequest struct {
	Owner                string                `json:"owner"`
	Recipes              []string              `json:"recipes"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	Identifier       string `json:"identifier"`
	RelationshipType string `json:"relationshipType"`
}

func newRegisterUploadBody(urn string) registerUploadBody {
	return registerUploadBody{
		RegisterUploadRequest: registerUploadRequest{
			Owner:   PersonURN(urn),
			Recipes: []string{feedshareImageRecipe},
			ServiceRelationships: []serviceRelationship{{
				Identifier:       ugcServiceIdentifier,
				RelationshipType: relationshipOwner,
			}},
		},
	}
}

type registerUploadResponse struct {
	Value struct {
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
		Asset string `json:"asset"`
	} `json:"value"`
}

// ParseUploadRegistration extracts the upload URL and asset from a
// registerUpload response. The HTTP request mechanism is preferred; any
// other mechanism carrying an uploadUrl is accepted in key order.
func ParseUploadRegistration(data []byte) (UploadRegistration, error) {
	var resp registerUploadResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return UploadRegistration{}, &UploadRegistrationError{Err: err}
	}

	reg := UploadRegistration{Asset: resp.Value.Asset}
	if m, ok := resp.Value.UploadMechanism[httpRequestMechanism]; ok && m.UploadURL != "" {
		reg.UploadURL = m.UploadURL
	} else {
		keys := make([]string, 0, len(resp.Value.UploadMechanism))
		for k := range resp.Value.UploadMechanism {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if u := resp.Value.UploadMechanism[k].UploadURL; u != "" {
				reg.UploadURL = u
				break
			}
		}
	}

	var missing []string
	if reg.UploadURL == "" {
		missing = append(missing, "uploadUrl")
	}
	if reg.Asset == "" {
		missing = append(missing, "asset")
	}
	if len(missing) > 0 {
		return UploadRegistration{}, &UploadRegistrationError{Missing: missing}
	}

	return reg, nil
}
