package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/inverted-index/index"
	apperrors "github.com/gcbaptista/inverted-index/internal/errors"
)

func newIndex(location string) *index.InvertedIndex {
	return &index.InvertedIndex{Location: location, Index: map[string]index.PostingList{}}
}

func TestIndexStore_PutGet(t *testing.T) {
	s := NewIndexStore()
	a := newIndex("a.json")
	s.Put("a.json", a)

	got, ok := s.Get("a.json")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = s.Get("missing.json")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestIndexStore_RecentEmpty(t *testing.T) {
	s := NewIndexStore()

	_, ii, err := s.Recent()
	assert.Nil(t, ii)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIndexNotFound))
}

func TestIndexStore_RecentFollowsInsertionOrder(t *testing.T) {
	s := NewIndexStore()
	s.Put("a.json", newIndex("a.json"))
	s.Put("b.json", newIndex("b.json"))

	location, _, err := s.Recent()
	require.NoError(t, err)
	assert.Equal(t, "b.json", location)

	// Rebuilding a replaces its index but keeps its original position.
	replacement := newIndex("a.json")
	s.Put("a.json", replacement)

	location, _, err = s.Recent()
	require.NoError(t, err)
	assert.Equal(t, "b.json", location)
	assert.Equal(t, []string{"a.json", "b.json"}, s.Locations())

	got, ok := s.Get("a.json")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 2, s.Len())
}

func TestIndexStore_Remove(t *testing.T) {
	s := NewIndexStore()
	s.Put("a.json", newIndex("a.json"))
	s.Put("b.json", newIndex("b.json"))

	assert.True(t, s.Remove("b.json"))
	assert.False(t, s.Remove("b.json"), "second remove is a no-op")

	_, ok := s.Get("b.json")
	assert.False(t, ok)

	location, _, err := s.Recent()
	require.NoError(t, err)
	assert.Equal(t, "a.json", location, "recent falls back to the previous index")

	assert.True(t, s.Remove("a.json"))
	_, _, err = s.Recent()
	assert.True(t, errors.Is(err, apperrors.ErrIndexNotFound))
}

func TestIndexStore_AllIsSnapshot(t *testing.T) {
	s := NewIndexStore()
	s.Put("a.json", newIndex("a.json"))

	all := s.All()
	require.Len(t, all, 1)
	delete(all, "a.json")

	_, ok := s.Get("a.json")
	assert.True(t, ok, "mutating the snapshot must not affect the store")
}

func TestIndexStore_Concurrent(t *testing.T) {
	s := NewIndexStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		location := fmt.Sprintf("source-%d.json", i)
		go func() {
			defer wg.Done()
			s.Put(location, newIndex(location))
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Recent()
			_ = s.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
	assert.Len(t, s.Locations(), 20)
}
