package domain

// IssueKind identifies the category of a validation issue.
type IssueKind string

const (
	// IssueMissingFrontMatter is reported when the document does not start with "---".
	IssueMissingFrontMatter IssueKind = "missing_front_matter"
	// IssueShortFile is reported when the document has fewer than two lines.
	IssueShortFile IssueKind = "short_file"
	// IssueUnterminatedFrontMatter is reported when no closing "---" line follows the opening one.
	IssueUnterminatedFrontMatter IssueKind = "unterminated_front_matter"
	// IssueMissingTitle is reported when the front matter block lacks a "title:" key.
	IssueMissingTitle IssueKind = "missing_title"
	// IssueRawHTML is reported when the document contains "<div" or "</div>".
	IssueRawHTML IssueKind = "raw_html"
	// IssueInvalidEncoding is reported for files that are not valid UTF-8 when
	// the validator records decode failures instead of aborting.
	IssueInvalidEncoding IssueKind = "invalid_encoding"
)

//nolint: gochecknoglobals
var issueMessages = map[IssueKind]string{
	IssueMissingFrontMatter:      "missing YAML front matter",
	IssueShortFile:               "short file",
	IssueUnterminatedFrontMatter: "unterminated YAML front matter",
	IssueMissingTitle:            "front matter missing `title:`",
	IssueRawHTML:                 "contains raw HTML tags (</div> or <div>) - consider removing",
	IssueInvalidEncoding:         "file is not valid UTF-8",
}

// Message returns the human-readable message printed for the kind.
func (k IssueKind) Message() string {
	if msg, ok := issueMessages[k]; ok {
		return msg
	}

	return string(k)
}

// Issue is a single validation failure found in one document.
type Issue struct {
	// Path is the document path relative to the scan root.
	Path string
	// Kind is the category of the failure.
	Kind IssueKind
	// Message is the human-readable description of the failure.
	Message string
}

// NewIssue creates an Issue for the given path using the kind's default message.
func NewIssue(path string, kind IssueKind) Issue {
	return Issue{Path: path, Kind: kind, Message: kind.Message()}
}

// String formats the issue as "<path>: <message>".
func (i Issue) String() string {
	return i.Path + ": " + i.Message
}
