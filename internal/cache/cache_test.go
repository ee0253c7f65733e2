package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeTest-git/testovoe-otsivy/internal/store"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failingStore struct {
	store.Store
	writes int
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (f *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	f.writes++
	return errors.New("disk on fire")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "yandex_reviews_123456", MainKey("123456"))
	assert.Equal(t, "yandex_reviews_123456_page_2", PageKey("123456", 2))
}

func TestRemember_CachesProducerResult(t *testing.T) {
	c := New(store.NewMemory(10))
	ctx := context.Background()
	calls := 0
	produce := func(context.Context) (record, error) {
		calls++
		return record{Name: "Кофейня", Count: calls}, nil
	}

	first, err := Remember(ctx, c, "k", time.Hour, produce)
	require.NoError(t, err)
	second, err := Remember(ctx, c, "k", time.Hour, produce)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestRemember_ErrorNotCached(t *testing.T) {
	c := New(store.NewMemory(10))
	ctx := context.Background()

	_, err := Remember(ctx, c, "k", time.Hour, func(context.Context) (record, error) {
		return record{}, errors.New("upstream down")
	})
	require.Error(t, err)

	_, ok := Peek[record](ctx, c, "k")
	assert.False(t, ok)

	v, err := Remember(ctx, c, "k", time.Hour, func(context.Context) (record, error) {
		return record{Name: "ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Name)
}

func TestRemember_StoreFailureDegrades(t *testing.T) {
	fs := &failingStore{}
	c := New(fs)
	calls := 0

	for i := 0; i < 2; i++ {
		v, err := Remember(context.Background(), c, "k", time.Hour, func(context.Context) (record, error) {
			calls++
			return record{Name: "fresh"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", v.Name)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, fs.writes)
}

func TestPeek_UndecodableIsMiss(t *testing.T) {
	mem := store.NewMemory(10)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "k", []byte("{not json"), time.Hour))

	_, ok := Peek[record](ctx, New(mem), "k")
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	c := New(store.NewMemory(10))
	ctx := context.Background()
	Put(ctx, c, MainKey("1"), record{Name: "a"}, time.Hour)
	Put(ctx, c, PageKey("1", 2), record{Name: "b"}, time.Hour)

	require.NoError(t, c.Forget(ctx, MainKey("1"), PageKey("1", 2)))

	_, ok := Peek[record](ctx, c, MainKey("1"))
	assert.False(t, ok)
	_, ok = Peek[record](ctx, c, PageKey("1", 2))
	assert.False(t, ok)
}
