// Package report renders validation reports and maps them to process exit codes.
package report

import (
	"fmt"
	"io"
	"strings"

	"mdvalidate/internal/config"
	"mdvalidate/pkg/domain"
	"mdvalidate/pkg/serrors"

	"github.com/go-faster/jx"
)

const (
	// ExitOK is returned when no issues were found.
	ExitOK = 0
	// ExitFailure is returned when the run itself failed (bad config, unreadable root, ...).
	ExitFailure = 1
	// ExitIssues is returned when at least one issue was found.
	ExitIssues = 2
)

const (
	passedLine = "All markdown files passed validation."
	failedLine = "Validation failed:"
)

// ExitCode maps a report to the process exit status.
func ExitCode(r domain.Report) int {
	if r.Passed() {
		return ExitOK
	}

	return ExitIssues
}

// Write renders r to w in the given format (config.FormatText or config.FormatJSON).
func Write(w io.Writer, r domain.Report, format string) error {
	switch format {
	case config.FormatText, "":
		return writeText(w, r)
	case config.FormatJSON:
		return writeJSON(w, r)
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown output format %q", format)
	}
}

func writeText(w io.Writer, r domain.Report) error {
	var b strings.Builder
	if r.Passed() {
		b.WriteString(passedLine + "\n")
	} else {
		b.WriteString(failedLine + "\n")
		for _, issue := range r.Issues() {
			b.WriteString(" - " + issue.String() + "\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}

func writeJSON(w io.Writer, r domain.Report) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("passed", func(e *jx.Encoder) { e.Bool(r.Passed()) })
		e.Field("issues", func(e *jx.Encoder) {
			e.ArrStart()
			for _, issue := range r.Issues() {
				e.Obj(func(e *jx.Encoder) {
					e.Field("path", func(e *jx.Encoder) { e.Str(issue.Path) })
					e.Field("kind", func(e *jx.Encoder) { e.Str(string(issue.Kind)) })
					e.Field("message", func(e *jx.Encoder) { e.Str(issue.Message) })
				})
			}
			e.ArrEnd()
		})
	})

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}
