package validator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"mdvalidate/internal/config"
	"mdvalidate/pkg/domain"
	"mdvalidate/pkg/logger"
	"mdvalidate/pkg/metrics"
	"mdvalidate/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//nolint: gochecknoglobals
var tracer = otel.Tracer("mdvalidate/internal/validator")

// DecodePolicy decides what happens to files whose bytes are not valid UTF-8.
type DecodePolicy string

const (
	// DecodeAbort fails the whole run without a partial report.
	DecodeAbort DecodePolicy = config.DecodePolicyAbort
	// DecodeRecord reports the file as an issue and continues with the next one.
	DecodeRecord DecodePolicy = config.DecodePolicyRecord
)

// Options configure which files are validated and how unreadable text is handled.
type Options struct {
	// ExcludeDirs lists directory names that are never descended into.
	ExcludeDirs []string
	// Extensions lists the file name suffixes treated as markdown. Matching is
	// case-insensitive.
	Extensions []string
	// DecodePolicy decides what happens to files that are not valid UTF-8.
	DecodePolicy DecodePolicy
}

// DefaultOptions returns the options matching a plain run: skip .git, check
// .md files and abort on invalid UTF-8.
func DefaultOptions() Options {
	return Options{
		ExcludeDirs:  []string{".git"},
		Extensions:   []string{".md"},
		DecodePolicy: DecodeAbort,
	}
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ExcludeDirs:  cfg.Validator.ExcludeDirs,
		Extensions:   cfg.Validator.Extensions,
		DecodePolicy: DecodePolicy(cfg.Validator.DecodePolicy),
	}
}

// validator is the concrete implementation of the Validator interface.
type validator struct {
	// options holds the file selection and decode settings.
	options Options
	// recorder receives per-document and per-run measurements.
	recorder *metrics.Recorder
}

// Validate walks root and checks every markdown file below it, returning the
// issues in walk order. The walk is lexical and skips excluded directories.
//
// Validate fails with serrors.ErrNotFound when root does not exist, with
// serrors.ErrBadRequest when it is not a directory, and with serrors.ErrDecode
// when a file is not valid UTF-8 under the DecodeAbort policy. No partial
// report is returned on failure.
func (v validator) Validate(ctx context.Context, root string) (domain.Report, error) {
	ctx, span := tracer.Start(ctx, "validator.Validate", trace.WithAttributes(attribute.String("root", root)))
	defer span.End()

	start := time.Now()
	ctx = logger.WithFields(ctx, zap.String("root", root))

	report, documents, err := v.walk(ctx, root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")

		return domain.Report{}, fmt.Errorf("could not validate %s: %w", root, err)
	}

	elapsed := time.Since(start)
	v.recorder.RunFinished(ctx, elapsed, report.Passed())
	fields := []zap.Field{
		zap.Int("documents", documents),
		zap.Int("issues", report.Len()),
		zap.Duration("elapsed", elapsed),
	}
	for kind, count := range report.CountByKind() {
		fields = append(fields, zap.Int(string(kind), count))
	}
	logger.Info(ctx, "validation finished", fields...)

	return report, nil
}

// walk traverses root and returns the report together with the number of
// documents checked.
func (v validator) walk(ctx context.Context, root string) (domain.Report, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Report{}, 0, serrors.Wrap(serrors.ErrNotFound, err, "scan root not found")
		}

		return domain.Report{}, 0, serrors.Wrap(serrors.ErrInternal, err, "could not stat scan root")
	}
	if !info.IsDir() {
		return domain.Report{}, 0, serrors.With(serrors.ErrBadRequest, "scan root %q is not a directory", root)
	}

	// WalkDir does not follow a symlinked root
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return domain.Report{}, 0, serrors.Wrap(serrors.ErrInternal, err, "could not resolve scan root")
	}

	var (
		builder   domain.ReportBuilder
		documents int
	)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr //nolint: wrapcheck
		}

		if err != nil {
			// unreadable directories are skipped, everything else is fatal
			if d != nil && d.IsDir() && path != root {
				logger.Warn(ctx, "skipping unreadable directory", zap.String("path", path), zap.Error(err))

				return filepath.SkipDir
			}

			return serrors.Wrap(serrors.ErrInternal, err, "could not walk %s", path)
		}

		if d.IsDir() {
			if path != root && v.excluded(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !v.isMarkdown(d.Name()) {
			return nil
		}

		regular, err := isRegularFile(path, d)
		if err != nil {
			return err
		}
		if !regular {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return serrors.Wrap(serrors.ErrInternal, err, "could not resolve relative path of %s", path)
		}

		issues, err := v.checkFile(ctx, path, rel)
		if err != nil {
			return err
		}
		documents++
		builder.Add(issues...)

		return nil
	})
	if err != nil {
		return domain.Report{}, 0, err //nolint: wrapcheck
	}

	return builder.Report(), documents, nil
}

// checkFile reads one markdown file and runs the document checks on it.
func (v validator) checkFile(ctx context.Context, path, rel string) ([]domain.Issue, error) {
	ctx, span := tracer.Start(ctx, "validator.checkFile", trace.WithAttributes(attribute.String("path", rel)))
	defer span.End()

	ctx = logger.WithFields(ctx, zap.String("path", rel))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not read %s", rel)
	}

	var issues []domain.Issue
	if !utf8.Valid(data) {
		if v.options.DecodePolicy != DecodeRecord {
			err := serrors.With(serrors.ErrDecode, "%s is not valid UTF-8", rel)
			span.RecordError(err)

			return nil, err
		}

		logger.Warn(ctx, "file is not valid UTF-8")
		issues = []domain.Issue{domain.NewIssue(rel, domain.IssueInvalidEncoding)}
	} else {
		var stage Stage
		issues, stage = CheckDocument(domain.Document{Path: rel, Text: normalizeNewlines(string(data))})
		logger.Debug(ctx, "document checked", zap.Stringer("stage", stage), zap.Int("issues", len(issues)))
	}

	v.recorder.DocumentScanned(ctx)
	v.recorder.IssuesFound(ctx, issues)
	span.SetAttributes(attribute.Int("issues", len(issues)))

	return issues, nil
}

func (v validator) excluded(name string) bool {
	return slices.Contains(v.options.ExcludeDirs, name)
}

func (v validator) isMarkdown(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range v.options.Extensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}

	return false
}

// isRegularFile reports whether the entry, following a symlink if needed,
// is a regular file. Broken symlinks are an error.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, serrors.Wrap(serrors.ErrInternal, err, "could not resolve symlink %s", path)
	}

	return info.Mode().IsRegular(), nil
}

// New creates a Validator configured with the given options. Measurements are
// sent to recorder; pass metrics.NewNop() to discard them.
func New(options Options, recorder *metrics.Recorder) Validator {
	if recorder == nil {
		recorder = metrics.NewNop()
	}

	return &validator{
		options:  options,
		recorder: recorder,
	}
}
