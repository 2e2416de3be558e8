package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/algoviz/internal/step"
)

func newTestRedis(t *testing.T, opts ...RedisOption) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	r := NewRedisFromClient(client, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func counting(calls *int, seq step.Sequence, err error) func() (step.Sequence, error) {
	return func() (step.Sequence, error) {
		*calls++
		return seq, err
	}
}

func TestRedis_GetOrCompute_StoresAndReuses(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	want := sampleSequence()

	calls := 0
	got, err := r.GetOrCompute(ctx, "bubble-sort|[3,1,2]", counting(&calls, want, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, mr.Exists(r.key("bubble-sort|[3,1,2]")))

	got, err = r.GetOrCompute(ctx, "bubble-sort|[3,1,2]", counting(&calls, step.Sequence{}, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestRedis_GetOrCompute_SharedAcrossInstances(t *testing.T) {
	first, mr := newTestRedis(t)
	ctx := context.Background()
	want := sampleSequence()

	calls := 0
	_, err := first.GetOrCompute(ctx, "k", counting(&calls, want, nil))
	require.NoError(t, err)

	second := NewRedisFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	defer second.Close()

	got, err := second.GetOrCompute(ctx, "k", counting(&calls, step.Sequence{}, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, calls)
}

func TestRedis_GetOrCompute_ErrorIsNotStored(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	calls := 0
	_, err := r.GetOrCompute(ctx, "k", counting(&calls, step.Sequence{}, errors.New("boom")))
	require.Error(t, err)
	assert.False(t, mr.Exists(r.key("k")))

	_, err = r.GetOrCompute(ctx, "k", counting(&calls, sampleSequence(), nil))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRedis_GetOrCompute_PanicBecomesError(t *testing.T) {
	r, _ := newTestRedis(t)

	_, err := r.GetOrCompute(context.Background(), "k", func() (step.Sequence, error) {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestRedis_WithOptions(t *testing.T) {
	r, mr := newTestRedis(t, WithTTL(time.Minute), WithPrefix("test:"))

	calls := 0
	_, err := r.GetOrCompute(context.Background(), "k", counting(&calls, sampleSequence(), nil))
	require.NoError(t, err)

	k := r.key("k")
	assert.Equal(t, "test:"+hash("k"), k)
	assert.Equal(t, time.Minute, mr.TTL(k))
}

func TestRedis_GetOrCompute_CorruptValueIsRecomputed(t *testing.T) {
	r, mr := newTestRedis(t)
	require.NoError(t, mr.Set(r.key("k"), "not json"))

	calls := 0
	got, err := r.GetOrCompute(context.Background(), "k", counting(&calls, sampleSequence(), nil))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, sampleSequence(), got)
}

func TestRedis_GetOrCompute_DegradesWhenUnavailable(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	calls := 0
	got, err := r.GetOrCompute(context.Background(), "k", counting(&calls, sampleSequence(), nil))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bubble-sort", got.Algorithm)
	assert.Error(t, r.Ping(context.Background()))
}
