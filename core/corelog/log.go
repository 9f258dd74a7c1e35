// Package corelog provides the library-style logging used by the core: a
// package-level zerolog.Logger that writes nowhere by default, matching the
// teacher's habit of logging unrecognized fields via bare log.Printf calls
// without requiring an application to configure anything.
package corelog

import (
	"io"

	"github.com/rs/zerolog"
)

// logger is the package-wide sink. Silent until a host application installs
// one with SetOutput.
var logger = zerolog.New(io.Discard)

// SetOutput redirects all core log output to w. The shell is expected to
// call this once at startup if it wants to surface core warnings.
func SetOutput(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// UnknownAttr logs a skipped/unrecognized attribute encountered while
// parsing a dialect document.
func UnknownAttr(name, parent string) {
	logger.Warn().Str("attr", name).Str("in", parent).Msg("skipped unrecognized attribute")
}

// UnknownElem logs a skipped/unrecognized child element.
func UnknownElem(name, parent string) {
	logger.Warn().Str("elem", name).Str("in", parent).Msg("skipped unrecognized element")
}

// UnknownProp logs a skipped/unrecognized JSON property.
func UnknownProp(name, parent string) {
	logger.Warn().Str("prop", name).Str("in", parent).Msg("skipped unrecognized property")
}

// Debugf logs a low-frequency debug message (animation ticks, etc).
func Debugf(msg string) {
	logger.Debug().Msg(msg)
}

// DroppedComponent logs an attached component instance that a lossy
// dialect (Tiled JSON/XML) could not degrade to properties because its
// definition carries no attributes (spec.md §9).
func DroppedComponent(defName, parent string) {
	logger.Warn().Str("component", defName).Str("in", parent).Msg("dropped empty component on save")
}
