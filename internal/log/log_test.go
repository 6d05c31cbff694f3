package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)
	ctx := WithLogger(context.Background(), l)

	FromContext(ctx).Info("fetching", "category", "Orkney Islands")

	out := buf.String()
	if !strings.Contains(out, "fetching") || !strings.Contains(out, "Orkney Islands") {
		t.Errorf("expected log line with message and key, got %q", out)
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	// Must not panic and must not write anywhere
	FromContext(context.Background()).Error("dropped")
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default", wantInfo: true},
		{name: "verbose", verbose: true, wantDebug: true, wantInfo: true},
		{name: "quiet", quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, tt.quiet)
			l.Debug("debug-line")
			l.Info("info-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug visible = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info visible = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
