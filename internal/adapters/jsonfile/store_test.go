package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cattree/internal/domain"
)

func testInventory() *domain.Inventory {
	return domain.NewInventory("Orkney Islands", 10, []domain.Record{
		{Name: "Brough of Birsay", Level: 1, Files: 12},
		{Name: "Kirkwall & St Ola", Level: 1, Files: 7, Incomplete: true},
		{Name: "Skara Brae <Neolithic>", Level: 2, Files: 3},
		{Name: "Sjórinn", Level: 1, Files: 0},
	}, time.Date(2025, 3, 1, 12, 30, 45, 123456000, time.UTC))
}

func TestStore_WriteCreatesDirectoryAndFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "orkney-categories.json")
	store := NewStore(path)

	inv := testInventory()
	inv.FailedQueries = 1
	if err := store.Write(context.Background(), inv); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		"{\n  \"updated\": \"2025-03-01T12:30:45.123456Z\",\n  \"root_category\": \"Orkney Islands\",",
		`"total_categories": 4,`,
		`"name": "Kirkwall & St Ola"`,
		`"name": "Skara Brae <Neolithic>"`,
		`"name": "Sjórinn"`,
		`"incomplete": true`,
		`"failed_queries": 1`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("artifact missing %q\n%s", want, got)
		}
	}
	if strings.Count(got, `"incomplete"`) != 1 {
		t.Errorf("incomplete should only appear on flagged records\n%s", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the artifact in the directory, found %d entries", len(entries))
	}
}

func TestStore_OmitsZeroFailedQueries(t *testing.T) {
	data, err := Encode(domain.NewInventory("Hoy", 1, nil, time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "failed_queries") {
		t.Errorf("failed_queries should be omitted when zero\n%s", got)
	}
	if !strings.Contains(got, `"categories": []`) {
		t.Errorf("empty inventory should have an empty categories array\n%s", got)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "inv.json"))
	want := testInventory()

	if err := store.Write(context.Background(), want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got.Updated != want.Updated || got.RootCategory != want.RootCategory || got.TotalCategories != want.TotalCategories {
		t.Errorf("metadata mismatch: got %+v", got)
	}
	for i := range want.Categories {
		if got.Categories[i] != want.Categories[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, want.Categories[i], got.Categories[i])
		}
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "inv.json"))
	ctx := context.Background()

	if err := store.Write(ctx, testInventory()); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(ctx, domain.NewInventory("Hoy", 2, nil, time.Now())); err != nil {
		t.Fatal(err)
	}

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.RootCategory != "Hoy" || len(got.Categories) != 0 {
		t.Errorf("expected the second inventory, got %+v", got)
	}
}

func TestStore_ReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewStore(filepath.Join(dir, "missing.json")).Read(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "malformed json",
			body:   "{not json",
			errMsg: "decode inventory",
		},
		{
			name:   "level zero",
			body:   `{"root_category": "R", "categories": [{"name": "X", "level": 0, "files": 1}]}`,
			errMsg: "level 0 is below 1",
		},
		{
			name:   "negative level",
			body:   `{"root_category": "R", "categories": [{"name": "A", "level": 1, "files": 1}, {"name": "B", "level": -2, "files": 1}]}`,
			errMsg: "level -2 is below 1",
		},
		{
			name:   "first record below the top level",
			body:   `{"root_category": "R", "categories": [{"name": "X", "level": 2, "files": 1}]}`,
			errMsg: "level 2 follows level 0",
		},
		{
			name:   "level jump",
			body:   `{"root_category": "R", "categories": [{"name": "A", "level": 1, "files": 1}, {"name": "B", "level": 3, "files": 1}]}`,
			errMsg: "level 3 follows level 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			inv, err := NewStore(path).Read(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
			if inv != nil {
				t.Errorf("expected no inventory, got %+v", inv)
			}
		})
	}
}

func TestDecode_AcceptsLevelDrops(t *testing.T) {
	inv, err := Decode([]byte(`{"root_category": "R", "categories": [
		{"name": "A", "level": 1, "files": 4},
		{"name": "B", "level": 2, "files": 3},
		{"name": "C", "level": 3, "files": 1},
		{"name": "D", "level": 1, "files": 2}
	]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.Categories) != 4 {
		t.Errorf("expected 4 records, got %d", len(inv.Categories))
	}
}
