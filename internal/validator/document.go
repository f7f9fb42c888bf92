package validator

import (
	"slices"
	"strings"
	"unicode"

	"mdvalidate/pkg/domain"
)

const (
	frontMatterDelimiter = "---"
	titleKey             = "title:"
	divOpenTag           = "<div"
	divCloseTag          = "</div>"
)

// Stage is the furthest point a document reached in the check cascade.
type Stage int

const (
	// StageStart means the document has no front matter.
	StageStart Stage = iota
	// StageHasFrontMatter means the document opens with "---" but has a single line.
	StageHasFrontMatter
	// StageLongEnough means the front matter was opened but never closed.
	StageLongEnough
	// StageChecked means the front matter is terminated and the title and raw
	// HTML checks ran.
	StageChecked
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageHasFrontMatter:
		return "has_front_matter"
	case StageLongEnough:
		return "long_enough"
	case StageChecked:
		return "checked"
	default:
		return "unknown"
	}
}

// CheckDocument runs the document checks in order and returns the issues found
// together with the stage the document reached.
//
// The first three checks gate the rest: a document without front matter, with
// a single line, or with unterminated front matter gets exactly one issue and
// is not inspected further, not even for raw HTML. Once the front matter is
// terminated, the title and raw HTML checks both run.
func CheckDocument(doc domain.Document) ([]domain.Issue, Stage) {
	text := doc.Text

	if !strings.HasPrefix(strings.TrimLeftFunc(text, isSpace), frontMatterDelimiter) {
		return []domain.Issue{domain.NewIssue(doc.Path, domain.IssueMissingFrontMatter)}, StageStart
	}

	// lines come from the raw text, leading whitespace included
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return []domain.Issue{domain.NewIssue(doc.Path, domain.IssueShortFile)}, StageHasFrontMatter
	}

	end := slices.Index(lines[1:], frontMatterDelimiter)
	if end < 0 {
		return []domain.Issue{domain.NewIssue(doc.Path, domain.IssueUnterminatedFrontMatter)}, StageLongEnough
	}
	// end is relative to lines[1:]; the closing delimiter sits at lines[end+1]
	frontMatter := strings.Join(lines[:end+2], "\n")

	var issues []domain.Issue
	if !strings.Contains(frontMatter, titleKey) {
		issues = append(issues, domain.NewIssue(doc.Path, domain.IssueMissingTitle))
	}
	if strings.Contains(text, divCloseTag) || strings.Contains(text, divOpenTag) {
		issues = append(issues, domain.NewIssue(doc.Path, domain.IssueRawHTML))
	}

	return issues, StageChecked
}

// isSpace reports Unicode white space, counting the information separators
// U+001C..U+001F as white space too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

//nolint: gochecknoglobals
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}
