package service

import (
	"context"
	"testing"
	"time"

	"github.com/benask/autoposter/internal/models"
	"github.com/benask/autoposter/internal/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduledDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		fails bool
	}{
		{
			name:  "rfc3339 utc",
			input: "2026-09-01T10:30:00Z",
			want:  time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset normalized to utc",
			input: "2026-09-01T12:30:00+02:00",
			want:  time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "naive seconds taken as utc",
			input: "2026-09-01T10:30:00",
			want:  time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "naive minutes taken as utc",
			input: "2026-09-01T10:30",
			want:  time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "garbage",
			input: "next tuesday",
			fails: true,
		},
		{
			name:  "date only",
			input: "2026-09-01",
			fails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScheduledDate(tt.input)
			if tt.fails {
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestSubmitSavedPostKindMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("text post becomes self post carrying the body", func(t *testing.T) {
		api := &fakeRedditAPI{}
		_, err := SubmitSavedPost(ctx, api, &models.SavedPost{
			Title:    "Thoughts",
			URL:      "the body text",
			PostKind: models.PostKindText,
		}, "golang")
		require.NoError(t, err)

		require.Len(t, api.submits, 1)
		req := api.submits[0].req
		assert.Equal(t, reddit.SubmitKindSelf, req.Kind)
		assert.Equal(t, "the body text", req.Text)
		assert.Empty(t, req.URL)
	})

	t.Run("media kinds become link posts", func(t *testing.T) {
		for _, kind := range []string{models.PostKindLink, models.PostKindImage, models.PostKindVideo, models.PostKindMediaLink} {
			api := &fakeRedditAPI{}
			_, err := SubmitSavedPost(ctx, api, &models.SavedPost{
				Title:    "A link",
				URL:      "https://example.com/thing",
				PostKind: kind,
			}, "golang")
			require.NoError(t, err, kind)

			require.Len(t, api.submits, 1)
			req := api.submits[0].req
			assert.Equal(t, reddit.SubmitKindLink, req.Kind, kind)
			assert.Equal(t, "https://example.com/thing", req.URL, kind)
		}
	})

	t.Run("unknown kind fails before any api call", func(t *testing.T) {
		api := &fakeRedditAPI{}
		_, err := SubmitSavedPost(ctx, api, &models.SavedPost{PostKind: "poll"}, "golang")
		assert.Error(t, err)
		assert.Empty(t, api.submits)
	})
}
