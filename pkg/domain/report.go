package domain

// Report is the ordered list of issues produced by one validation run.
// A Report is immutable once built; use ReportBuilder to assemble one.
type Report struct {
	issues []Issue
}

// NewReport returns a Report holding a copy of the given issues.
func NewReport(issues ...Issue) Report {
	if len(issues) == 0 {
		return Report{}
	}

	return Report{issues: append([]Issue(nil), issues...)}
}

// Issues returns a copy of the issues in insertion order.
func (r Report) Issues() []Issue {
	if len(r.issues) == 0 {
		return nil
	}

	return append([]Issue(nil), r.issues...)
}

// Len returns the number of issues in the report.
func (r Report) Len() int { return len(r.issues) }

// Passed reports whether the run found no issues.
func (r Report) Passed() bool { return len(r.issues) == 0 }

// CountByKind returns the number of issues per kind.
func (r Report) CountByKind() map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, issue := range r.issues {
		counts[issue.Kind]++
	}

	return counts
}

// ReportBuilder accumulates issues in order and produces a Report.
// The zero value is ready to use.
type ReportBuilder struct {
	issues []Issue
}

// Add appends issues to the builder.
func (b *ReportBuilder) Add(issues ...Issue) {
	b.issues = append(b.issues, issues...)
}

// Report returns an immutable snapshot of the accumulated issues.
func (b *ReportBuilder) Report() Report {
	return NewReport(b.issues...)
}
