// Package job loads batch conversion jobs from HCL files.
//
// A job file lists convert blocks, one per input:
//
//	output_dir  = "${env.HOME}/palettes"
//	parallelism = 4
//
//	convert "brushes" {
//	  input      = "Brushes.grd"
//	  format     = "afpalette"
//	  split      = "groups"
//	  split_size = 50
//	  output_dir = "out"
//	}
//
// Expressions can read the process environment through the env object.
// Relative paths are resolved against the job file's directory.
// Jobs run concurrently, up to parallelism at a time (one per CPU when
// unset).
package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/convert"
)

var (
	// ErrDuplicateLabel is returned when two convert blocks share a label.
	ErrDuplicateLabel = errors.New("job: duplicate convert label")

	// ErrInvalidSplitSize is returned for a negative split_size.
	ErrInvalidSplitSize = errors.New("job: split_size must not be negative")

	// ErrInvalidParallelism is returned for a negative parallelism.
	ErrInvalidParallelism = errors.New("job: parallelism must not be negative")
)

// File is a loaded job file.
type File struct {
	Path string
	Jobs []Job

	// Parallelism bounds concurrent jobs; 0 means one per CPU.
	Parallelism int
}

// Job is one convert block.
type Job struct {
	Label string
	convert.Request
}

// hclFile is the decoding target for a job file.
type hclFile struct {
	OutputDir   string        `hcl:"output_dir,optional"`
	Parallelism int           `hcl:"parallelism,optional"`
	Converts    []*hclConvert `hcl:"convert,block"`
}

type hclConvert struct {
	Label     string `hcl:"label,label"`
	Input     string `hcl:"input"`
	Format    string `hcl:"format,optional"`
	Split     string `hcl:"split,optional"`
	SplitSize int    `hcl:"split_size,optional"`
	OutputDir string `hcl:"output_dir,optional"`
}

// Load parses and validates the job file at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(f.Body, evalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", path, diags)
	}

	if raw.Parallelism < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidParallelism)
	}

	base := filepath.Dir(path)
	defaultOut := resolve(base, raw.OutputDir)

	file := &File{
		Path:        path,
		Jobs:        make([]Job, 0, len(raw.Converts)),
		Parallelism: raw.Parallelism,
	}
	seen := make(map[string]bool, len(raw.Converts))
	for _, c := range raw.Converts {
		if seen[c.Label] {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrDuplicateLabel, c.Label)
		}
		seen[c.Label] = true

		j, err := newJob(base, defaultOut, c)
		if err != nil {
			return nil, fmt.Errorf("%s: convert %q: %w", path, c.Label, err)
		}
		file.Jobs = append(file.Jobs, j)
	}

	gradkit.Logger().Debug("job: loaded", "path", path, "jobs", len(file.Jobs))
	return file, nil
}

func newJob(base, defaultOut string, c *hclConvert) (Job, error) {
	format, err := convert.ParseFormat(c.Format)
	if err != nil {
		return Job{}, err
	}
	mode, err := convert.ParseSplit(c.Split)
	if err != nil {
		return Job{}, err
	}
	if c.SplitSize < 0 {
		return Job{}, ErrInvalidSplitSize
	}

	out := defaultOut
	if c.OutputDir != "" {
		out = resolve(base, c.OutputDir)
	}
	return Job{
		Label: c.Label,
		Request: convert.Request{
			Input:     resolve(base, c.Input),
			OutputDir: out,
			Format:    format,
			Split:     mode,
			SplitSize: c.SplitSize,
		},
	}, nil
}

// Run converts every job, up to f.Parallelism at a time. A failing job
// does not stop the others; all failures are returned joined. Written
// paths are reported in job order. Cancelling ctx skips jobs that have
// not started.
func (f *File) Run(ctx context.Context) ([]string, error) {
	reqs := make([]convert.Request, len(f.Jobs))
	for i, j := range f.Jobs {
		reqs[i] = j.Request
	}

	var (
		written []string
		errs    []error
	)
	for i, r := range convert.Files(ctx, reqs, f.Parallelism) {
		written = append(written, r.Paths...)
		if r.Err != nil {
			label := f.Jobs[i].Label
			gradkit.Logger().Warn("job: convert failed", "job", label, "err", r.Err)
			errs = append(errs, fmt.Errorf("job %q: %w", label, r.Err))
		}
	}
	return written, errors.Join(errs...)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// evalContext exposes the process environment as the env object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
