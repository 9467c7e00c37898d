// Package logging configures the zerolog logger used by cmd/tetrify and
// by the optional search-driver trace hook, so every log line speaks the
// same wire idiom (spec.md §6: `{"log": "..."}<EOF>\n`) the streamed
// result frames use.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

func init() {
	// The wire format's log lines are a bare {"log": "..."} object, not
	// zerolog's usual {"level": "...", "message": "..."}: renaming the
	// message field lets zerolog emit that shape directly.
	zerolog.MessageFieldName = "log"
}

// New returns a zerolog.Logger that writes to w, normally a
// *proto.FrameWriter so every log line comes out <EOF>-terminated. Callers
// use Logger.Log() rather than Info()/Debug()/etc. throughout this module,
// since Log() omits the "level" field zerolog would otherwise add,
// matching the minimal {"log": "..."} line shape.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w)
}
