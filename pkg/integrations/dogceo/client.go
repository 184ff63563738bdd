package dogceo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/pawfetch/pkg/integrations"
)

// DefaultURL is the public random dog image endpoint.
const DefaultURL = "https://dog.ceo/api/breeds/image/random"

const statusSuccess = "success"

// Client fetches random dog images.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	url string
}

// NewClient creates a Dog CEO client that queries url (use [DefaultURL]).
func NewClient(url string, hc *http.Client, userAgent string) *Client {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Client{
		Client: integrations.NewClient(hc, headers),
		url:    url,
	}
}

// RandomImage returns the URL of a random dog image.
//
// The response must carry status "success" and a non-empty absolute
// message URL; anything else is [integrations.ErrMalformed].
func (c *Client) RandomImage(ctx context.Context) (string, error) {
	var data imageResponse
	if err := c.Get(ctx, c.url, &data); err != nil {
		return "", err
	}
	if data.Status != statusSuccess {
		return "", fmt.Errorf("%w: status %q", integrations.ErrMalformed, data.Status)
	}
	msg := strings.TrimSpace(data.Message)
	if !strings.HasPrefix(msg, "http://") && !strings.HasPrefix(msg, "https://") {
		return "", fmt.Errorf("%w: message %q is not an image URL", integrations.ErrMalformed, data.Message)
	}
	return msg, nil
}

type imageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
