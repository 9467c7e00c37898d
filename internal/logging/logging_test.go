package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/taylor-giles/Tetrify/internal/board"
	"github.com/taylor-giles/Tetrify/internal/search"
)

func TestNewLogsUnderLogFieldWithoutLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.Log().Str("detail", "x").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"log":"hello"`) {
		t.Errorf("output %q missing log field", out)
	}
	if strings.Contains(out, `"level"`) {
		t.Errorf("output %q unexpectedly contains a level field", out)
	}
}

func TestTraceSolutionFoundLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	tr := &Trace{Logger: New(&buf)}
	tr.SolutionFound([]search.Step{{}, {}})
	if !strings.Contains(buf.String(), `"pieces_placed":2`) {
		t.Errorf("output %q missing pieces_placed field", buf.String())
	}
}

func TestTraceNodeEnteredRespectsInterval(t *testing.T) {
	var buf bytes.Buffer
	tr := &Trace{Logger: New(&buf), NodeLogInterval: 3}
	b := board.FromTarget([][]bool{{false}})
	for i := 0; i < 5; i++ {
		tr.NodeEntered(i, b)
	}
	lines := strings.Count(buf.String(), "nodes_visited")
	if lines != 1 {
		t.Errorf("logged %d lines for 5 nodes at interval 3, want 1", lines)
	}
}

func TestTraceNodeEnteredDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	tr := &Trace{Logger: New(&buf)}
	b := board.FromTarget([][]bool{{false}})
	tr.NodeEntered(0, b)
	if buf.Len() != 0 {
		t.Errorf("expected no output with NodeLogInterval unset, got %q", buf.String())
	}
}
