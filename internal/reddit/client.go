package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client talks to the Reddit API on behalf of one linked account. The
// underlying http.Client refreshes the access token transparently from the
// account's refresh token.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

type ClientFactory struct {
	userAgent string
}

func NewClientFactory(userAgent string) *ClientFactory {
	return &ClientFactory{userAgent: userAgent}
}

func (f *ClientFactory) ClientFor(creds Credentials, refreshToken string) API {
	return f.ClientFromToken(creds, &oauth2.Token{RefreshToken: refreshToken})
}

func (f *ClientFactory) ClientFromToken(creds Credentials, token *oauth2.Token) API {
	ctx := context.Background()
	src := oauthConfig(creds).TokenSource(ctx, token)

	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Transport = &userAgentTransport{
		userAgent: f.userAgent,
		base:      httpClient.Transport,
	}
	httpClient.Timeout = 30 * time.Second

	return &Client{
		http: httpClient,
		// Reddit allows ~60 requests per minute per client.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// userAgentTransport stamps every request with a descriptive User-Agent,
// which Reddit requires for API access.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

// APIError is a non-2xx response from the Reddit API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit api returned status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	return resp, nil
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, apiBase+"/api/v1/me?raw_json=1", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}

	return &identity, nil
}

// SavedPosts walks the account's full saved listing. Saved comments show up
// in the same listing and are skipped; only link things (t3) are returned.
func (c *Client) SavedPosts(ctx context.Context, username string) ([]*SavedPost, error) {
	var posts []*SavedPost
	after := ""

	for {
		listURL := fmt.Sprintf("%s/user/%s/saved?raw_json=1&limit=100", apiBase, url.PathEscape(username))
		if after != "" {
			listURL += "&after=" + url.QueryEscape(after)
		}

		resp, err := c.do(ctx, http.MethodGet, listURL, nil, "")
		if err != nil {
			return nil, err
		}

		page, next, err := parseSavedListing(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		posts = append(posts, page...)
		if next == "" {
			break
		}
		after = next
	}

	return posts, nil
}

func parseSavedListing(r io.Reader) ([]*SavedPost, string, error) {
	var envelope struct {
		Data struct {
			After    string `json:"after"`
			Children []struct {
				Kind string          `json:"kind"`
				Data json.RawMessage `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}

	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		slog.Info(err.Error())
		return nil, "", fmt.Errorf("failed to decode saved listing: %w", err)
	}

	var posts []*SavedPost
	for _, child := range envelope.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post SavedPost
		if err := json.Unmarshal(child.Data, &post); err != nil {
			slog.Info(err.Error())
			continue
		}
		posts = append(posts, &post)
	}

	return posts, envelope.Data.After, nil
}

const (
	SubmitKindSelf = "self"
	SubmitKindLink = "link"
)

type SubmitRequest struct {
	Subreddit string
	Title     string
	Kind      string // SubmitKindSelf or SubmitKindLink
	Text      string // body for self posts
	URL       string // destination for link posts
}

// Submission is the accepted post as reported by Reddit.
type Submission struct {
	ID       string
	FullName string
	URL      string
}

func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("sr", req.Subreddit)
	form.Set("title", req.Title)
	form.Set("kind", req.Kind)
	switch req.Kind {
	case SubmitKindSelf:
		form.Set("text", req.Text)
	case SubmitKindLink:
		form.Set("url", req.URL)
	default:
		return nil, fmt.Errorf("unsupported submit kind %q", req.Kind)
	}

	resp, err := c.do(ctx, http.MethodPost, apiBase+"/api/submit",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		JSON struct {
			Errors [][]any `json:"errors"`
			Data   struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}

	if len(result.JSON.Errors) > 0 {
		return nil, fmt.Errorf("reddit rejected submission: %v", result.JSON.Errors[0])
	}

	return &Submission{
		ID:       result.JSON.Data.ID,
		FullName: result.JSON.Data.Name,
		URL:      result.JSON.Data.URL,
	}, nil
}
