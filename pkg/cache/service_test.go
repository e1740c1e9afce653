package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNilClient_AlwaysMisses(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", payload{Name: "a"}, time.Minute))

	var got payload
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), ErrCacheMiss)
	assert.NoError(t, svc.Delete(ctx, "k"))
	assert.NoError(t, svc.DeletePattern(ctx, "k*"))
}

func TestNilClient_GetOrSetFetchesEveryTime(t *testing.T) {
	svc := NewService(nil)
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &payload{Name: "hall", Count: calls}, nil
	}

	var got payload
	require.NoError(t, svc.GetOrSet(context.Background(), "k", time.Minute, fetch, &got))
	require.NoError(t, svc.GetOrSet(context.Background(), "k", time.Minute, fetch, &got))

	assert.Equal(t, 2, calls)
	assert.Equal(t, payload{Name: "hall", Count: 2}, got)
}

func TestGetOrSet_FetcherError(t *testing.T) {
	boom := errors.New("boom")
	var got payload

	err := NewService(nil).GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return nil, boom
	}, &got)
	assert.ErrorIs(t, err, boom)
}
