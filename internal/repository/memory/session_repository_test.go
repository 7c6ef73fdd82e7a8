package memory

import (
	"sync"
	"testing"
	"time"

	"survey-dashboard-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	s := repo.GetOrCreate("a")
	require.NotNil(t, s)
	assert.Equal(t, entity.SourceNone, s.Source)
	assert.True(t, s.Dataset.IsEmpty())

	assert.Same(t, s, repo.GetOrCreate("a"))
	assert.NotSame(t, s, repo.GetOrCreate("b"))
	assert.Equal(t, 2, repo.Count())

	repo.Delete("a")
	_, ok := repo.Get("a")
	assert.False(t, ok)
}

func TestGetOrCreateConcurrent(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	var wg sync.WaitGroup
	got := make([]*entity.Session, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = repo.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for _, s := range got[1:] {
		assert.Same(t, got[0], s)
	}
}

func TestSessionExpires(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.GetOrCreate("short")

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get("short")
	assert.False(t, ok)
}
