package randomuser

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/pawfetch/pkg/integrations"
)

// DefaultURL is the public random user endpoint restricted to the name field.
const DefaultURL = "https://randomuser.me/api/?inc=name"

// Client fetches random person names.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	url string
}

// NewClient creates a Random User client that queries url (use [DefaultURL]).
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

// RandomFirstName returns results[0].name.first from the service.
// An empty results list or a missing/blank first name is [integrations.ErrMalformed].
func (c *Client) RandomFirstName(ctx context.Context) (string, error) {
	var data usersResponse
	if err := c.Get(ctx, c.url, &data); err != nil {
		return "", err
	}
	if len(data.Results) == 0 {
		return "", fmt.Errorf("%w: no results", integrations.ErrMalformed)
	}
	name := data.Results[0].Name
	if name == nil {
		return "", fmt.Errorf("%w: results[0].name missing", integrations.ErrMalformed)
	}
	first := strings.TrimSpace(name.First)
	if first == "" {
		return "", fmt.Errorf("%w: results[0].name.first empty", integrations.ErrMalformed)
	}
	return first, nil
}

type usersResponse struct {
	Results []struct {
		Name *struct {
			Title string `json:"title"`
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
	} `json:"results"`
}
