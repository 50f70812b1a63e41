package reftrace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/IvanBrykalov/lockspace/space"
)

// Wiring a Tracer into a space must log one ref and one unref per
// acquisition, and must not disturb the acquisition itself.
func TestTracer_LogsRefAndUnref(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := space.New[string, int](space.Options[string, int]{
		Trace: New(logger, false),
	})

	g, err := s.Acquire("traced", func() int { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	g.Release()

	out := buf.String()
	if !strings.Contains(out, "op=ref") || !strings.Contains(out, "op=unref") {
		t.Fatalf("missing ref/unref events in output:\n%s", out)
	}
	if !strings.Contains(out, "key=traced") {
		t.Fatalf("missing key attribute in output:\n%s", out)
	}
	// refs=2 on acquire (map + guard), refs=1 when the guard drops.
	if !strings.Contains(out, "refs=2") || !strings.Contains(out, "refs=1") {
		t.Fatalf("unexpected refcounts in output:\n%s", out)
	}
}

func TestTracer_StackCapture(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := New(logger, true)
	tr.Ref("k", 2)

	if !strings.Contains(buf.String(), "reftrace") {
		t.Fatalf("stack trace must mention this package:\n%s", buf.String())
	}
}
