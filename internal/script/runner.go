package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kumarlokesh/radix-dictionary/internal/dictionary"
)

const (
	defaultExtension = ".txt"
	defaultWorkers   = 4
)

// Result is the verdict for one script
type Result struct {
	Name       string        `json:"name"`
	Path       string        `json:"path,omitempty"`
	Passed     bool          `json:"passed"`
	Operations int           `json:"operations"`
	FailedAt   int           `json:"failed_at"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Runner replays scripts against fresh dictionaries
type Runner struct {
	logger    zerolog.Logger
	extension string
	workers   int
	trace     io.Writer
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger; dictionaries created by the runner share it
func WithLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithExtension selects which files of a directory are treated as scripts
func WithExtension(ext string) RunnerOption {
	return func(r *Runner) {
		r.extension = ext
	}
}

// WithWorkers bounds how many scripts run at once
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithTrace makes the runner print a script's operations before running it
// when the script was named directly rather than found in a directory.
func WithTrace(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.trace = w
	}
}

// NewRunner creates a new Runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:    zerolog.Nop(),
		extension: defaultExtension,
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type job struct {
	path    string
	verbose bool
}

// RunPaths runs every script named by paths. A file is run on its own; a
// directory contributes its files with the configured extension, in sorted
// order. Results follow the same order regardless of scheduling.
func (r *Runner) RunPaths(ctx context.Context, paths ...string) ([]Result, error) {
	var jobs []job
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			jobs = append(jobs, job{path: path, verbose: true})
			continue
		}

		files, err := r.listScripts(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			r.logger.Warn().Str("dir", path).Str("extension", r.extension).Msg("No script files found in directory")
		}
		for _, f := range files {
			jobs = append(jobs, job{path: f})
		}
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			results[i] = r.runFile(gctx, j)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) listScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), r.extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) runFile(ctx context.Context, j job) Result {
	r.logger.Debug().Str("path", j.path).Msg("Processing script")

	s, err := ParseFile(j.path)
	if err != nil {
		r.logger.Error().Err(err).Str("path", j.path).Msg("Failed to read script")
		return Result{
			Name:     filepath.Base(j.path),
			Path:     j.path,
			FailedAt: -1,
			Message:  fmt.Sprintf("Error reading testcase file: %v", err),
		}
	}
	if j.verbose && r.trace != nil {
		fmt.Fprint(r.trace, s.String())
	}

	res := r.Run(ctx, s)
	res.Path = j.path
	return res
}

// Run replays s against a new dictionary and stops at the first operation
// whose result differs from the expected value.
func (r *Runner) Run(ctx context.Context, s *Script) Result {
	res := Result{Name: s.Name, Operations: len(s.Ops), FailedAt: -1}
	d := dictionary.New(dictionary.WithLogger(r.logger))

	start := time.Now()
	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			res.FailedAt = i
			res.Message = fmt.Sprintf("Test failed at operation %d: %v", i, err)
			break
		}
		if msg := r.apply(d, i, op); msg != "" {
			res.FailedAt = i
			res.Message = msg
			break
		}
	}
	res.Duration = time.Since(start)
	res.Passed = res.FailedAt < 0

	event := r.logger.Debug()
	if !res.Passed {
		event = r.logger.Info().Str("reason", res.Message)
	}
	event.Str("script", s.Name).Bool("passed", res.Passed).Dur("duration", res.Duration).Msg("Script finished")
	return res
}

// apply executes one operation and returns a failure message, or "" on success
func (r *Runner) apply(d *dictionary.Dictionary, i int, op Op) string {
	var got string
	switch op.Type {
	case OpAdd:
		return r.mutationResult(i, op, d.Add(op.Word, op.Definition))
	case OpRemove:
		return r.mutationResult(i, op, d.Remove(op.Word))
	case OpCompress:
		if err := d.Compress(); err != nil {
			return fmt.Sprintf("Test failed at operation %d: %v", i, err)
		}
		return ""
	case OpGetDefinition:
		got = render(d.Definition(op.Word))
	case OpGetSequence:
		got = render(d.Sequence(op.Word))
	case OpCountPrefix:
		got = strconv.Itoa(d.CountPrefix(op.Word))
	default:
		return fmt.Sprintf("Test failed at operation %d: invalid operation type: %d", i, int(op.Type))
	}

	if got != op.Expected {
		return fmt.Sprintf("Test failed at operation %d[%s]: expected %s but got %s", i, op, op.Expected, got)
	}
	return ""
}

// mutationResult treats a mutation rejected by a frozen dictionary as a no-op
func (r *Runner) mutationResult(i int, op Op, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dictionary.ErrFrozen):
		r.logger.Debug().Int("operation", i).Str("op", op.String()).Msg("Mutation after compress ignored")
		return ""
	default:
		return fmt.Sprintf("Test failed at operation %d: %v", i, err)
	}
}

func render(value string, ok bool) string {
	if !ok {
		return Absent
	}
	return value
}

// Passed reports whether every result passed
func Passed(results []Result) bool {
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return true
}
