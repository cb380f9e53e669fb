package reddit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedListingPage = `{
	"kind": "Listing",
	"data": {
		"after": "t3_next",
		"children": [
			{
				"kind": "t3",
				"data": {
					"id": "abc",
					"title": "A link post",
					"url": "https://example.com/article",
					"subreddit": "golang",
					"created_utc": 1756400000.0,
					"is_video": false,
					"is_reddit_media_domain": false
				}
			},
			{
				"kind": "t1",
				"data": {"id": "comment1", "body": "a saved comment"}
			},
			{
				"kind": "t3",
				"data": {
					"id": "def",
					"title": "A video",
					"url": "https://v.redd.it/xyz",
					"subreddit": "videos",
					"created_utc": 1756300000.0,
					"is_video": true,
					"media": {"reddit_video": {"fallback_url": "https://v.redd.it/xyz/DASH_720.mp4"}}
				}
			}
		]
	}
}`

func TestParseSavedListing(t *testing.T) {
	posts, after, err := parseSavedListing(strings.NewReader(savedListingPage))
	require.NoError(t, err)

	assert.Equal(t, "t3_next", after)
	// saved comments (t1) are skipped
	require.Len(t, posts, 2)

	assert.Equal(t, "abc", posts[0].ID)
	assert.Equal(t, "A link post", posts[0].Title)
	assert.Equal(t, "golang", posts[0].Subreddit)

	assert.Equal(t, "def", posts[1].ID)
	assert.True(t, posts[1].IsVideo)
	require.NotNil(t, posts[1].Media)
	require.NotNil(t, posts[1].Media.RedditVideo)
	assert.Equal(t, "https://v.redd.it/xyz/DASH_720.mp4", posts[1].Media.RedditVideo.FallbackURL)
}

func TestParseSavedListingLastPage(t *testing.T) {
	posts, after, err := parseSavedListing(strings.NewReader(`{"kind":"Listing","data":{"after":null,"children":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, after)
}

func TestParseSavedListingBadJSON(t *testing.T) {
	_, _, err := parseSavedListing(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestAuthCodeURL(t *testing.T) {
	creds := Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/reddit/callback/",
	}

	u := AuthCodeURL(creds, "state-token")

	assert.True(t, strings.HasPrefix(u, authURL))
	assert.Contains(t, u, "duration=permanent")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=state-token")
	for _, scope := range DefaultScopes {
		assert.Contains(t, u, scope)
	}
}

func TestCredentialsComplete(t *testing.T) {
	assert.False(t, Credentials{}.Complete())
	assert.False(t, Credentials{ClientID: "id"}.Complete())
	assert.True(t, Credentials{ClientID: "id", ClientSecret: "secret"}.Complete())
}
