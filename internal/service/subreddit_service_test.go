package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubredditGetCreatesEmptySetting(t *testing.T) {
	sr := newFakeSubredditRepo()
	s := NewSubredditService(sr)

	list, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the empty list is persisted on first access
	stored, ok := sr.lists[1]
	assert.True(t, ok)
	assert.Empty(t, stored)
}

func TestSubredditReplaceNormalizesNames(t *testing.T) {
	sr := newFakeSubredditRepo()
	s := NewSubredditService(sr)

	err := s.Replace(context.Background(), 1, []string{" golang ", "/r/programming", "r/webdev", "", "  "})
	require.NoError(t, err)

	assert.Equal(t, []string{"golang", "programming", "webdev"}, sr.lists[1])
}
