package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cattree/internal/application"
	"cattree/internal/domain"
)

type stubSource struct {
	subcats   map[string][]string
	files     map[string]int
	failFiles map[string]bool
}

func (s *stubSource) Subcategories(_ context.Context, name string) ([]string, error) {
	return s.subcats[name], nil
}

func (s *stubSource) FileCount(_ context.Context, name string) (int, error) {
	if s.failFiles[name] {
		return 0, errors.New("timeout")
	}
	return s.files[name], nil
}

type memWriter struct {
	written *domain.Inventory
	err     error
}

func (w *memWriter) Write(_ context.Context, inv *domain.Inventory) error {
	if w.err != nil {
		return w.err
	}
	w.written = inv
	return nil
}

func (w *memWriter) Location() string { return "mem://inventory.json" }

type memStore struct {
	runs    []domain.RunSummary
	saveErr error
}

func (s *memStore) SaveRun(_ context.Context, inv *domain.Inventory, run domain.RunSummary) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	run.ID = int64(len(s.runs) + 1)
	run.RootCategory = inv.RootCategory
	run.TotalCategories = inv.TotalCategories
	s.runs = append(s.runs, run)
	return run.ID, nil
}

func (s *memStore) ListRuns(_ context.Context, root string, limit int) ([]domain.RunSummary, error) {
	return s.runs, nil
}

func (s *memStore) LoadRun(_ context.Context, id int64) (*domain.Inventory, error) {
	return nil, application.ErrNotFound
}

func (s *memStore) Close() error { return nil }

func exampleStub() *stubSource {
	return &stubSource{
		subcats: map[string][]string{"A": {"B", "C"}, "B": {"D"}},
		files:   map[string]int{"A": 2, "B": 5, "C": 1, "D": 3},
	}
}

var fixedNow = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestCrawlCommand_Execute(t *testing.T) {
	writer := &memWriter{}
	store := &memStore{}
	cmd := NewCrawlCommand(exampleStub(), writer, store, "A", 10, 0)
	cmd.Now = fixedNow

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := writer.written
	if inv == nil {
		t.Fatal("expected inventory to be written")
	}
	if inv.RootCategory != "A" || inv.MaxDepth != 10 {
		t.Errorf("unexpected metadata: %+v", inv)
	}
	if inv.Updated != "2025-01-02T03:04:05.000000Z" {
		t.Errorf("unexpected timestamp %q", inv.Updated)
	}
	if inv.TotalCategories != len(inv.Categories) || inv.TotalCategories != 3 {
		t.Errorf("expected 3 categories, got %d (%d records)", inv.TotalCategories, len(inv.Categories))
	}

	want := []domain.Record{
		{Name: "B", Level: 1, Files: 8},
		{Name: "D", Level: 2, Files: 3},
		{Name: "C", Level: 1, Files: 1},
	}
	for i, r := range want {
		if inv.Categories[i] != r {
			t.Errorf("record %d: expected %+v, got %+v", i, r, inv.Categories[i])
		}
	}

	if result.RunID != 1 || len(store.runs) != 1 {
		t.Errorf("expected run to be recorded, got id %d", result.RunID)
	}
	if store.runs[0].OutputPath != "mem://inventory.json" {
		t.Errorf("unexpected output path %q", store.runs[0].OutputPath)
	}
	if result.Location != "mem://inventory.json" {
		t.Errorf("unexpected location %q", result.Location)
	}
}

func TestCrawlCommand_FailedQueriesAreReported(t *testing.T) {
	src := exampleStub()
	src.failFiles = map[string]bool{"C": true}
	writer := &memWriter{}

	result, err := NewCrawlCommand(src, writer, nil, "A", 10, 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("run should complete despite failures: %v", err)
	}

	if writer.written.FailedQueries != 1 {
		t.Errorf("expected 1 failed query, got %d", writer.written.FailedQueries)
	}
	c := writer.written.Categories[2]
	if c.Name != "C" || c.Files != 0 || !c.Incomplete {
		t.Errorf("expected C with 0 files flagged incomplete, got %+v", c)
	}
	if len(result.Failures) != 1 {
		t.Errorf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.RunID != 0 {
		t.Errorf("no store configured, expected run ID 0, got %d", result.RunID)
	}
}

func TestCrawlCommand_WriterError(t *testing.T) {
	writer := &memWriter{err: errors.New("disk full")}

	_, err := NewCrawlCommand(exampleStub(), writer, nil, "A", 10, 0).Execute(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected writer error, got %v", err)
	}
}

func TestCrawlCommand_HistoryErrorIsNotFatal(t *testing.T) {
	store := &memStore{saveErr: errors.New("database is locked")}

	result, err := NewCrawlCommand(exampleStub(), &memWriter{}, store, "A", 10, 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RunID != 0 {
		t.Errorf("expected run ID 0, got %d", result.RunID)
	}
}

func TestCrawlCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		maxDepth int
		errMsg   string
	}{
		{name: "valid", root: "A", maxDepth: 1},
		{name: "empty root", root: "", maxDepth: 3, errMsg: "root category is required"},
		{name: "zero depth", root: "A", maxDepth: 0, errMsg: "max depth must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCrawlCommand(exampleStub(), &memWriter{}, nil, tt.root, tt.maxDepth, 0).Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
			if !errors.Is(err, application.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestCrawlCommand_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	writer := &memWriter{}

	_, err := NewCrawlCommand(exampleStub(), writer, nil, "A", 10, 0).Execute(ctx)
	if !application.IsCanceled(err) {
		t.Errorf("expected cancellation error, got %v", err)
	}
	if writer.written != nil {
		t.Error("nothing should be written after cancellation")
	}
}
