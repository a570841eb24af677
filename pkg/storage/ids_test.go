package storage

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/html2url/internal/models"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{12}$`)

func TestNewIDShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.Regexp(t, idPattern, NewID())
	}
}

func TestUniqueIDAvoidsStoredArtifacts(t *testing.T) {
	store := newTestStore(t)

	id := store.UniqueID()
	require.Regexp(t, idPattern, id)
	require.False(t, store.Exists(id, models.KindHTML))
	require.False(t, store.Exists(id, models.KindPDF))
}

func TestUniqueIDConcurrentDistinct(t *testing.T) {
	store := newTestStore(t)

	const workers = 32
	ids := make(chan string, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := store.UniqueID()
			errs <- store.Put(id, models.KindHTML, []byte("x"))
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]struct{}, workers)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, workers)
}
