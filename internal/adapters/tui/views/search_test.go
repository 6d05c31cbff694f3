package views

import (
	"strings"
	"testing"
)

func typeQuery(m *SearchModel, q string) {
	for _, r := range q {
		m.Update(keyMsg(string(r)))
	}
}

func TestSearch_FindsAndSelects(t *testing.T) {
	m := NewSearchModel()
	m.SetInventory(testInventory())
	m.Reset()

	typeQuery(m, "magnus")
	if len(m.results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(m.results))
	}
	if m.results[0].Name != "St Magnus Cathedral" {
		t.Errorf("expected best match first, got %s", m.results[0].Name)
	}

	m.Update(keyMsg("down"))
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a select command")
	}
	sel, ok := cmd().(SearchSelectMsg)
	if !ok || sel.Name != "Interior of St Magnus Cathedral" {
		t.Errorf("unexpected selection %#v", sel)
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	m := NewSearchModel()
	m.SetInventory(testInventory())

	typeQuery(m, "h")
	if len(m.results) != 0 {
		t.Errorf("single character should not search, got %d results", len(m.results))
	}
	if !strings.Contains(m.View(), "Type at least 2 characters") {
		t.Error("expected hint for short query")
	}
}

func TestSearch_Cancel(t *testing.T) {
	m := NewSearchModel()
	_, cmd := m.Update(keyMsg("esc"))
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("esc should switch back to the browser")
	}
}

func TestHighlightMatches(t *testing.T) {
	if got := highlightMatches("Hoy", nil); got != "Hoy" {
		t.Errorf("no matches should leave the name unchanged, got %q", got)
	}
	got := highlightMatches("Hoy", []int{0})
	if !strings.Contains(got, "oy") {
		t.Errorf("unmatched characters should be kept, got %q", got)
	}
}
