package updates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &CycleDraft{
		Upstream:  "origin/main",
		Local:     "abc123",
		Remote:    "def456",
		MergeBase: "abc123",
		Outcome:   OutcomeUpdated,
		Restarted: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Fatal("expected a generated ID")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.Outcome != OutcomeUpdated || got.Local != "abc123" || !got.Restarted {
		t.Errorf("round-tripped cycle differs: %+v", got)
	}
}

func TestRepository_GetUnknown(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	outcomes := []Outcome{OutcomeUpToDate, OutcomeDiverged, OutcomeUpdated}
	for _, outcome := range outcomes {
		if _, err := repo.Create(ctx, &CycleDraft{Outcome: outcome}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct index timestamps
	}

	cycles, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cycles) != len(outcomes) {
		t.Fatalf("expected %d cycles, got %d", len(outcomes), len(cycles))
	}
	for i, cycle := range cycles {
		if want := outcomes[len(outcomes)-1-i]; cycle.Outcome != want {
			t.Errorf("cycle %d: expected outcome %q, got %q", i, want, cycle.Outcome)
		}
	}

	limited, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 cycles with limit, got %d", len(limited))
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.Outcome != OutcomeUpdated {
		t.Errorf("expected latest outcome %q, got %q", OutcomeUpdated, latest.Outcome)
	}
}

func TestRepository_LatestEmpty(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	if _, err := repo.Latest(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}
}
