package reddit

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/benask/autoposter/internal/models"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

type Identity struct {
	Name string `json:"name"`
}

type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
}

type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

// SavedPost is a link thing (t3) from a saved listing, decoded into the
// fields the importer classifies on.
type SavedPost struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	URL                 string  `json:"url"`
	URLOverriddenByDest string  `json:"url_overridden_by_dest"`
	Selftext            string  `json:"selftext"`
	Subreddit           string  `json:"subreddit"`
	CreatedUTC          float64 `json:"created_utc"`
	IsVideo             bool    `json:"is_video"`
	IsRedditMediaDomain bool    `json:"is_reddit_media_domain"`
	Media               *Media  `json:"media"`
}

func (p *SavedPost) Created() time.Time {
	return time.Unix(int64(p.CreatedUTC), 0).UTC()
}

// Classify determines the post kind and the media URL to record. Precedence
// is fixed: video flag, then Reddit-hosted media domain, then image file
// extension, then self text, else a plain link.
func (p *SavedPost) Classify() (kind, mediaURL string) {
	switch {
	case p.IsVideo:
		if p.Media != nil && p.Media.RedditVideo != nil {
			mediaURL = p.Media.RedditVideo.FallbackURL
		} else if isHostedVideoURL(p.URL) {
			mediaURL = p.URL
		}
		return models.PostKindVideo, mediaURL

	case p.IsRedditMediaDomain:
		mediaURL = p.URLOverriddenByDest
		if strings.Contains(p.URL, "i.redd.it") {
			return models.PostKindImage, mediaURL
		}
		return models.PostKindMediaLink, mediaURL

	case isImageURL(p.URL):
		return models.PostKindImage, p.URL

	case p.Selftext != "":
		return models.PostKindText, ""

	default:
		return models.PostKindLink, ""
	}
}

func isHostedVideoURL(rawURL string) bool {
	return strings.Contains(rawURL, "redgifs.com") || strings.Contains(rawURL, "gfycat.com")
}

func isImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	if ext == "" {
		return false
	}
	t := filetype.GetType(ext)
	return t != types.Unknown && t.MIME.Type == "image"
}
