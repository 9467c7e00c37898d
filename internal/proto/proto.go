// Package proto implements the Tetrify request shell's wire protocol: one
// JSON request read from stdin, and a stream of JSON response lines
// written to stdout, each followed by the literal <EOF> sentinel so a
// line-unaware reader on the other end of the pipe can still frame
// messages.
package proto

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// sentinel terminates every frame written to stdout, immediately after the
// JSON object itself (no separating newline).
const sentinel = "<EOF>\n"

// Request is the single object read from stdin at process start.
type Request struct {
	Grid           [][]bool `json:"grid"`
	FalsePositives int      `json:"false_positives"`
	FalseNegatives int      `json:"false_negatives"`
	EnforceGravity bool     `json:"enforce_gravity"`
	ReduceIs       bool     `json:"reduce_Is"`
	Seed           *int64   `json:"seed,omitempty"`
}

// Validate reports whether r describes a well-formed request: a
// rectangular, non-empty grid and non-negative tolerances.
func (r Request) Validate() error {
	if len(r.Grid) == 0 {
		return fmt.Errorf("proto: grid must have at least one row")
	}
	width := len(r.Grid[0])
	if width == 0 {
		return fmt.Errorf("proto: grid rows must have at least one column")
	}
	for i, row := range r.Grid {
		if len(row) != width {
			return fmt.Errorf("proto: grid row %d has %d columns, want %d", i, len(row), width)
		}
	}
	if r.FalsePositives < 0 || r.FalseNegatives < 0 {
		return fmt.Errorf("proto: tolerances must be non-negative")
	}
	return nil
}

// Response is one streamed solution: the full reified animation, emitted
// as a sequence of frames. Frames is a plain 3-D array of board state
// codes — cell code = selectedBit*3 + occupiedBit, per §4.F — not an array
// of richer objects, so that a consumer following §6 literally (e.g.
// expecting [[[0,0],[0,0]]] for a trivial request) can decode it without
// knowing about the action trail. Actions, if present, carries the
// human-readable move that produced each frame, aligned by index; it is
// omitted entirely when empty rather than emitted as a parallel array of
// nulls.
type Response struct {
	Frames  [][][]int `json:"frames"`
	Actions []string  `json:"actions,omitempty"`
}

// LogLine is a single structured log message framed the same way a
// Response is, so the two interleave on stdout without either side needing
// to distinguish line types before parsing.
type LogLine struct {
	Log string `json:"log"`
}

// FrameWriter writes <EOF>-terminated JSON frames to an underlying writer.
// Result frames and the log lines of a zerolog.Logger built on top of it
// (see internal/logging) share one stream, each call emitting one whole
// frame. FrameWriter does no locking: a frame is two writes to the
// underlying writer, so calls made concurrently from several goroutines
// can interleave.
type FrameWriter struct {
	w io.Writer
}

// NewFrameWriter wraps w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteResponse marshals and frames a Response.
func (fw *FrameWriter) WriteResponse(r Response) error {
	return fw.writeFramed(r)
}

// WriteLog marshals and frames a log message as a LogLine.
func (fw *FrameWriter) WriteLog(message string) error {
	return fw.writeFramed(LogLine{Log: message})
}

func (fw *FrameWriter) writeFramed(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("proto: marshal failed: %w", err)
	}
	if _, err := fw.w.Write(encoded); err != nil {
		return fmt.Errorf("proto: write failed: %w", err)
	}
	if _, err := io.WriteString(fw.w, sentinel); err != nil {
		return fmt.Errorf("proto: write sentinel failed: %w", err)
	}
	return nil
}

// Write implements io.Writer by appending the <EOF> sentinel after each
// call's bytes. zerolog is configured (internal/logging) to emit
// {"log": "...", ...} objects directly, one per Write call, so this sink
// only needs to own the framing, not re-encode the line; the one trailing
// newline zerolog ends each line with is dropped, so the sentinel follows
// the JSON object directly, as it does for WriteResponse.
func (fw *FrameWriter) Write(p []byte) (int, error) {
	body := p
	if n := len(body); n > 0 && body[n-1] == '\n' {
		body = body[:n-1]
	}
	if _, err := fw.w.Write(body); err != nil {
		return 0, fmt.Errorf("proto: write failed: %w", err)
	}
	if _, err := io.WriteString(fw.w, sentinel); err != nil {
		return 0, fmt.Errorf("proto: write sentinel failed: %w", err)
	}
	return len(p), nil
}

// DecodeRequest reads and validates exactly one Request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("proto: decode request failed: %w", err)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}
