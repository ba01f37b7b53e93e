// Package convert runs the file-level conversion pipeline: read a .grd
// file, decode it, optionally split it, and write each part in the
// requested format.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/afpalette"
	"github.com/colorwav3/gradkit/grd"
	"github.com/colorwav3/gradkit/internal/parallel"
	"github.com/colorwav3/gradkit/preview"
)

// Format is an output file format.
type Format string

// Output formats.
const (
	FormatAfpalette Format = "afpalette"
	FormatGRD       Format = "grd"
	FormatPNG       Format = "png" // swatch sheet preview
)

// Split selects how a collection is divided into output files.
type Split string

// Split modes.
const (
	SplitNone   Split = "none"
	SplitGroups Split = "groups"
	SplitCount  Split = "count"
)

var (
	// ErrUnknownFormat is returned for an output format other than
	// afpalette, grd or png.
	ErrUnknownFormat = errors.New("convert: unknown output format")

	// ErrUnknownSplit is returned for a split mode other than none,
	// groups or count.
	ErrUnknownSplit = errors.New("convert: unknown split mode")

	// ErrNoGradients is returned when an input yields no gradients.
	ErrNoGradients = errors.New("convert: no gradients found")
)

// ParseFormat parses an output format name. The empty string selects
// afpalette.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatAfpalette, nil
	case FormatAfpalette, FormatGRD, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ParseSplit parses a split mode. The empty string selects none.
func ParseSplit(s string) (Split, error) {
	switch m := Split(strings.ToLower(s)); m {
	case "":
		return SplitNone, nil
	case SplitNone, SplitGroups, SplitCount:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSplit, s)
}

// Request describes one input file and how to convert it.
type Request struct {
	Input     string
	OutputDir string // defaults to the input's directory
	Format    Format
	Split     Split
	SplitSize int // gradients per file for SplitCount
}

// Ext returns the file extension, with dot, of the format.
func (f Format) Ext() string {
	return "." + string(f)
}

// File converts req.Input and returns the paths written. Cancelling ctx
// stops the conversion between output files.
func File(ctx context.Context, req Request) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	mode, err := ParseSplit(string(req.Split))
	if err != nil {
		return nil, err
	}

	log := gradkit.Logger().With("input", req.Input)

	data, err := os.ReadFile(req.Input)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(req.Input), filepath.Ext(req.Input))
	skipped := 0
	c, err := grd.Decode(data,
		grd.WithName(name),
		grd.WithRecordErrorHandler(func(*grd.RecordError) { skipped++ }),
	)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", req.Input, err)
	}
	if len(c.Gradients) == 0 {
		return nil, fmt.Errorf("convert %s: %w", req.Input, ErrNoGradients)
	}
	log.Info("decoded gradients", "gradients", len(c.Gradients), "groups", len(c.Groups), "skipped", skipped)

	dir := req.OutputDir
	if dir == "" {
		dir = filepath.Dir(req.Input)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	var written []string
	for _, part := range split(c, mode, req.SplitSize) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		out, err := encode(part, format)
		if err != nil {
			return written, fmt.Errorf("convert %s: %w", part.Name, err)
		}
		path := filepath.Join(dir, gradkit.SafeFileName(part.Name)+format.Ext())
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return written, fmt.Errorf("convert: %w", err)
		}
		log.Info("wrote file", "path", path, "gradients", len(part.Gradients))
		written = append(written, path)
	}
	return written, nil
}

// Result is the outcome of one Request.
type Result struct {
	Request Request
	Paths   []string
	Err     error
}

// Files converts every request using up to workers goroutines, or one
// per CPU if workers < 1. Results are returned in request order.
func Files(ctx context.Context, reqs []Request, workers int) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := parallel.NewPool(min(workers, len(reqs)))
	defer pool.Close()

	errs := pool.Run(ctx, len(reqs), func(ctx context.Context, i int) error {
		paths, err := File(ctx, reqs[i])
		results[i].Paths = paths
		return err
	})
	for i := range results {
		results[i].Request = reqs[i]
		results[i].Err = errs[i]
	}
	return results
}

func split(c *gradkit.Collection, mode Split, size int) []*gradkit.Collection {
	switch mode {
	case SplitGroups:
		if len(c.Groups) > 0 {
			return gradkit.SplitByGroup(c)
		}
	case SplitCount:
		return gradkit.SplitByCount(c, size)
	}
	return []*gradkit.Collection{c}
}

func encode(c *gradkit.Collection, f Format) ([]byte, error) {
	switch f {
	case FormatGRD:
		return grd.Encode(c)
	case FormatPNG:
		var buf bytes.Buffer
		if err := preview.Encode(&buf, c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return afpalette.Encode(c)
}
