package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/html2url/internal/models"
	"github.com/noah-isme/html2url/pkg/storage"
)

type retentionStoreMock struct {
	mu        sync.Mutex
	artifacts []models.Artifact
	listErr   error
	deleteErr map[string]error
	deleted   []string
}

func (m *retentionStoreMock) List() ([]models.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Artifact(nil), m.artifacts...), nil
}

func (m *retentionStoreMock) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.deleteErr[name]; ok {
		return err
	}
	m.deleted = append(m.deleted, name)
	return nil
}

func TestRetentionSweepEvictsExpired(t *testing.T) {
	now := time.Now()
	store := &retentionStoreMock{
		artifacts: []models.Artifact{
			{Name: "old.html", Kind: models.KindHTML, CreatedAt: now.Add(-25 * time.Hour)},
			{Name: "old.pdf", Kind: models.KindPDF, CreatedAt: now.Add(-25 * time.Hour)},
			{Name: "young.html", Kind: models.KindHTML, CreatedAt: now.Add(-time.Hour)},
		},
	}
	retention := NewRetention(store, nil, nil, RetentionConfig{MaxFileAge: 24 * time.Hour, CleanupInterval: time.Minute})

	deleted := retention.Sweep(now)
	require.Equal(t, 2, deleted)
	require.ElementsMatch(t, []string{"old.html", "old.pdf"}, store.deleted)
}

func TestRetentionSweepContinuesPastFailures(t *testing.T) {
	now := time.Now()
	store := &retentionStoreMock{
		artifacts: []models.Artifact{
			{Name: "a.html", Kind: models.KindHTML, CreatedAt: now.Add(-48 * time.Hour)},
			{Name: "b.html", Kind: models.KindHTML, CreatedAt: now.Add(-48 * time.Hour)},
			{Name: "c.html", Kind: models.KindHTML, CreatedAt: now.Add(-48 * time.Hour)},
		},
		deleteErr: map[string]error{
			"a.html": errors.New("permission denied"),
			"b.html": storage.ErrNotFound,
		},
	}
	retention := NewRetention(store, nil, nil, RetentionConfig{MaxFileAge: 24 * time.Hour, CleanupInterval: time.Minute})

	deleted := retention.Sweep(now)
	require.Equal(t, 1, deleted)
	require.Equal(t, []string{"c.html"}, store.deleted)
}

func TestRetentionSweepListFailure(t *testing.T) {
	store := &retentionStoreMock{listErr: errors.New("disk gone")}
	retention := NewRetention(store, nil, nil, RetentionConfig{MaxFileAge: 24 * time.Hour, CleanupInterval: time.Minute})

	require.Equal(t, 0, retention.Sweep(time.Now()))
}

func TestRetentionStartOnce(t *testing.T) {
	store := &retentionStoreMock{}
	retention := NewRetention(store, nil, nil, RetentionConfig{MaxFileAge: 24 * time.Hour, CleanupInterval: time.Hour})

	ctx := context.Background()
	retention.Start(ctx)
	retention.Start(ctx)
	retention.Stop()
	// Stop after Stop is a no-op as well.
	retention.Stop()
}

func TestRetentionEndToEnd(t *testing.T) {
	dir := t.TempDir()
	fsStore, err := storage.NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, fsStore.Put("aaaaaaaaaaaa", models.KindHTML, []byte("old")))
	require.NoError(t, fsStore.Put("bbbbbbbbbbbb", models.KindHTML, []byte("young")))

	retention := NewRetention(fsStore, nil, nil, RetentionConfig{MaxFileAge: 24 * time.Hour, CleanupInterval: time.Hour})

	// Pretend a day passed for the first artifact by sweeping from the future.
	deleted := retention.Sweep(time.Now().Add(25 * time.Hour))
	require.Equal(t, 2, deleted)

	require.NoError(t, fsStore.Put("cccccccccccc", models.KindHTML, []byte("fresh")))
	require.Equal(t, 0, retention.Sweep(time.Now()))

	artifacts, err := fsStore.List()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	require.Equal(t, "cccccccccccc.html", artifacts[0].Name)
}
