package scaffold

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"elekit/pkg/domain"
	"elekit/pkg/logger"
	"elekit/pkg/serrors"

	"go.uber.org/zap"
)

// Finding is one conformance issue found at a path.
type Finding struct {
	// Path is relative to the scaffold root.
	Path string
	// Reason is a human-readable description of the issue.
	Reason string
}

// Report is the outcome of checking a tree against a layout. Violations are
// hard failures (missing nodes, wrong types, drifted templates); Warnings are
// expected lived-in states such as placeholders the user filled in.
type Report struct {
	LayoutName string
	Root       string
	Violations []Finding
	Warnings   []Finding
}

// Conforms reports whether the tree satisfies the layout.
func (r *Report) Conforms() bool { return len(r.Violations) == 0 }

// Verify checks the tree under the root against the layout. The findings are
// recorded in the journal as a verify run.
func (s *scaffolder) Verify(ctx context.Context) (*Report, error) {
	run := s.newRun(domain.RunKindVerify)
	ctx = logger.WithFields(ctx,
		zap.String("layout", s.layout.Name),
		zap.String("root", s.options.Root))

	if err := s.record(ctx, run); err != nil {
		return nil, err
	}

	report, verifyErr := s.check(ctx)
	if report != nil {
		run.Stats = domain.RunStats{
			Violations: len(report.Violations),
			Warnings:   len(report.Warnings),
		}
	}

	if err := s.finish(ctx, run, verifyErr); err != nil {
		return nil, err
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	logger.Info(ctx, "verify finished",
		zap.Bool("conforms", report.Conforms()),
		zap.Int("violations", len(report.Violations)),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// check walks the layout and collects findings. Only unexpected I/O failures
// produce an error; conformance problems go into the report.
func (s *scaffolder) check(ctx context.Context) (*Report, error) {
	report := &Report{
		LayoutName: s.layout.Name,
		Root:       s.options.Root,
	}

	for _, n := range s.layout.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		abs := filepath.Join(s.options.Root, filepath.FromSlash(n.Path))
		info, err := os.Stat(abs)
		if errors.Is(err, fs.ErrNotExist) {
			report.Violations = append(report.Violations, Finding{Path: n.Path, Reason: missingReason(n.Kind)})

			continue
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrIO, err, "could not stat %q", abs)
		}

		switch n.Kind {
		case domain.NodeDir:
			if !info.IsDir() {
				report.Violations = append(report.Violations, Finding{Path: n.Path, Reason: "not a directory"})
			}
		case domain.NodeFile:
			switch {
			case info.IsDir():
				report.Violations = append(report.Violations, Finding{Path: n.Path, Reason: "is a directory"})
			case info.Size() > 0:
				// a filled-in placeholder is normal in a lived-in project
				report.Warnings = append(report.Warnings, Finding{Path: n.Path, Reason: "placeholder is not empty"})
			}
		case domain.NodeTemplate:
			if info.IsDir() {
				report.Violations = append(report.Violations, Finding{Path: n.Path, Reason: "is a directory"})

				continue
			}
			got, err := os.ReadFile(abs)
			if err != nil {
				return nil, serrors.Wrap(serrors.ErrIO, err, "could not read %q", abs)
			}
			if !bytes.Equal(got, []byte(n.Content)) {
				report.Violations = append(report.Violations, Finding{Path: n.Path, Reason: "content differs from template"})
			}
		}
	}

	return report, nil
}

func missingReason(kind domain.NodeKind) string {
	if kind == domain.NodeDir {
		return "directory missing"
	}

	return "file missing"
}
