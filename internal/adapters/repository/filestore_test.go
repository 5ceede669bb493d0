package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pitchlab/rabona/internal/domain/model"
)

func sampleSession(id string) model.Session {
	return model.Session{
		ID:        id,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Attributes: model.PlayerAttributes{
			HeightCM:     180,
			DominantFoot: "right",
			Position:     "striker",
			Age:          22,
			Pace:         0.8,
			Dribbling:    0.6,
			Passing:      0.6,
			Shooting:     0.7,
		},
		Metrics: model.Metrics{KneeFlex: 60, BodyLean: 15, SprintTempo: 170, Touches: 20},
		SimilarPlayers: []model.Match{
			{Name: "A", Position: "striker", Club: "X FC", Similarity: 0.99},
		},
	}
}

func TestFileStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := sampleSession("abc-123")
	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.Get(ctx, "abc-123")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("expected id %q, got %q", want.ID, got.ID)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", want.CreatedAt, got.CreatedAt)
	}
	if got.Attributes != want.Attributes {
		t.Errorf("attributes mismatch: %+v vs %+v", got.Attributes, want.Attributes)
	}
	if got.Metrics != want.Metrics {
		t.Errorf("metrics mismatch: %+v vs %+v", got.Metrics, want.Metrics)
	}
	if len(got.SimilarPlayers) != 1 || got.SimilarPlayers[0] != want.SimilarPlayers[0] {
		t.Errorf("similar players mismatch: %+v", got.SimilarPlayers)
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestFileStore_GetUnknown(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = store.Get(ctx, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := sampleSession("dup-1")
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Create(ctx, s); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFileStore_RejectsPathEscapes(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		if _, err := store.Get(ctx, id); err == nil {
			t.Errorf("expected error for id %q", id)
		}
		if err := store.Create(ctx, sampleSession(id)); err == nil {
			t.Errorf("expected create error for id %q", id)
		}
	}
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Create(ctx, sampleSession("clean-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "clean-1.json")); err != nil {
		t.Errorf("expected session file on disk: %v", err)
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	if err := store.Create(ctx, sampleSession("m-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Create(ctx, sampleSession("m-1")); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := store.Get(ctx, "m-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}
