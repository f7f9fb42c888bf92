package domain

// Document is a single Markdown file loaded for validation.
// It lives only for the duration of its checks.
type Document struct {
	// Path is the file path relative to the scan root.
	Path string
	// Text is the full decoded content of the file with line endings normalized to "\n".
	Text string
}
