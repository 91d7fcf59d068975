package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/internal/iocache"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedCommitSource(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	ev := schema.CommitEvent{SHA: "abc", Project: "octo/repo"}
	key := commitCacheKey(ev)
	fresh := schema.CommitDetail{HasStats: true, Additions: 5, Deletions: 1, Files: []string{"main.go"}}
	encoded, err := json.Marshal(fresh)
	require.NoError(t, err)

	tests := []struct {
		name       string
		data       []byte
		version    int
		ts         int64
		getErr     error
		wantSource bool
	}{
		{"hit", encoded, currentCacheVersion, now.Add(-time.Hour).Unix(), nil, false},
		{"miss", nil, 0, 0, errors.New("not found"), true},
		{"stale", encoded, currentCacheVersion, now.Add(-48 * time.Hour).Unix(), nil, true},
		{"old version", encoded, currentCacheVersion + 1, now.Unix(), nil, true},
		{"corrupt", []byte("{"), currentCacheVersion, now.Unix(), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", key).Return(tt.data, tt.version, tt.ts, tt.getErr)

			source := &contract.MockCommitSource{}
			if tt.wantSource {
				source.On("CommitDetail", ctx, ev).Return(fresh, nil)
				store.On("Set", key, encoded, currentCacheVersion, now.Unix()).Return(nil)
			}

			cached := newCachedCommitSource(source, store, 24*time.Hour)
			cached.now = func() time.Time { return now }

			got, err := cached.CommitDetail(ctx, ev)
			require.NoError(t, err)
			assert.Equal(t, fresh, got)
			source.AssertExpectations(t)
			store.AssertExpectations(t)
			if !tt.wantSource {
				source.AssertNotCalled(t, "CommitDetail", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCachedCommitSourceErrors(t *testing.T) {
	ctx := context.Background()
	ev := schema.CommitEvent{SHA: "abc", Project: "octo/repo"}

	t.Run("source error is not cached", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("miss"))
		source := &contract.MockCommitSource{}
		source.On("CommitDetail", ctx, ev).Return(schema.CommitDetail{}, errors.New("rate limited"))

		_, err := newCachedCommitSource(source, store, time.Hour).CommitDetail(ctx, ev)
		assert.ErrorContains(t, err, "rate limited")
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store write failure is ignored", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("miss"))
		store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("read only"))
		source := &contract.MockCommitSource{}
		source.On("CommitDetail", ctx, ev).Return(schema.CommitDetail{Additions: 1}, nil)

		got, err := newCachedCommitSource(source, store, time.Hour).CommitDetail(ctx, ev)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Additions)
	})
}

func TestCachedCommitSourceDelegates(t *testing.T) {
	source := &contract.MockCommitSource{}
	source.On("Name").Return("github")
	cached := newCachedCommitSource(source, &iocache.MockCacheStore{}, 0)

	assert.Equal(t, "github", cached.Name())
	assert.Equal(t, contract.DefaultCacheTTL, cached.ttl)
}

func TestCommitCacheKey(t *testing.T) {
	a := commitCacheKey(schema.CommitEvent{SHA: "abc", Project: "o/r1"})
	b := commitCacheKey(schema.CommitEvent{SHA: "abc", Project: "o/r2"})
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b, "same sha in different repos must not collide")
	assert.Equal(t, a, commitCacheKey(schema.CommitEvent{SHA: "abc", Project: "o/r1", Message: "ignored"}))
}
