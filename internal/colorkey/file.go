package colorkey

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// DefaultOutputSuffix is appended to the source stem when no destination is given.
const DefaultOutputSuffix = "_transparent"

// DefaultOutputPath returns "<dir>/<stem><suffix>.png" for src. An empty suffix
// means DefaultOutputSuffix.
func DefaultOutputPath(src, suffix string) string {
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	return strings.TrimSuffix(src, filepath.Ext(src)) + suffix + ".png"
}

// Job describes one background removal.
type Job struct {
	Source string
	// Output is the destination PNG. Empty means DefaultOutputPath(Source, suffix).
	Output    string
	Target    imaging.RGBColor
	Tolerance int
	// Trim crops the result to its visible content after removal.
	Trim bool
}

// FileResult summarizes a completed job.
type FileResult struct {
	Source         string          `json:"source"`
	Output         string          `json:"output"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Target         string          `json:"target"`
	Tolerance      int             `json:"tolerance"`
	Threshold      int             `json:"threshold"`
	RemovedPixels  int             `json:"removed_pixels"`
	TotalPixels    int             `json:"total_pixels"`
	RemovedPercent float64         `json:"removed_percent"`
	Trimmed        *imaging.Region `json:"trimmed,omitempty"`
	DurationMs     int64           `json:"duration_ms"`
}

// Processor runs file-to-file background removal.
type Processor struct {
	loader imaging.Loader
	logger hclog.Logger
	suffix string
}

// NewProcessor creates a Processor. A nil loader decodes straight from disk;
// a nil logger discards output.
func NewProcessor(loader imaging.Loader, logger hclog.Logger, suffix string) *Processor {
	if loader == nil {
		loader = imaging.NewFileLoader()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}
	return &Processor{loader: loader, logger: logger, suffix: suffix}
}

// Suffix returns the suffix used for default output paths.
func (p *Processor) Suffix() string {
	return p.suffix
}

// OutputPath resolves the destination for job.
func (p *Processor) OutputPath(job Job) string {
	if job.Output != "" {
		return job.Output
	}
	return DefaultOutputPath(job.Source, p.suffix)
}

// Process decodes job.Source, removes its background and writes a PNG.
//
// Errors are a *DecodeError when the source cannot be decoded and a
// *WriteError when the destination cannot be written; in both cases nothing
// is left at the destination. The source file is never modified.
func (p *Processor) Process(ctx context.Context, job Job) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	out := p.OutputPath(job)

	if sameFile(job.Source, out) {
		return nil, &WriteError{Path: out, Err: ErrSameFile}
	}

	src, err := p.loader.Load(job.Source)
	if err != nil {
		return nil, err
	}

	res := Segment(src, job.Target, job.Tolerance)
	result := &FileResult{
		Source:         job.Source,
		Output:         out,
		Target:         job.Target.Hex(),
		Tolerance:      job.Tolerance,
		Threshold:      res.Threshold,
		RemovedPixels:  res.Removed,
		TotalPixels:    res.Total,
		RemovedPercent: res.RemovedPercent(),
	}

	final := res.Image
	if job.Trim {
		t := imaging.TrimTransparent(res.Image)
		if !t.Empty {
			final = t.Image
			result.Trimmed = &t.Bounds
		}
	}
	result.Width = final.Bounds().Dx()
	result.Height = final.Bounds().Dy()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := writePNGAtomic(out, final); err != nil {
		return nil, err
	}

	result.DurationMs = time.Since(start).Milliseconds()
	p.logger.Debug("background removed",
		"source", job.Source,
		"output", out,
		"target", result.Target,
		"tolerance", job.Tolerance,
		"removed", res.Removed,
		"total", res.Total,
		"duration_ms", result.DurationMs)

	return result, nil
}

// outputFileMode is the permission of new outputs. An existing destination
// keeps its own mode.
const outputFileMode os.FileMode = 0o644

// writePNGAtomic encodes img into a temp file beside path and renames it into
// place, so a failed write never leaves a partial file.
func writePNGAtomic(path string, img image.Image) error {
	mode := outputFileMode
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := imaging.EncodePNG(tmp, img); err != nil {
		return fail(fmt.Errorf("encode png: %w", err))
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// sameFile reports whether a and b name the same file, either by cleaned path
// or, when both exist, by identity.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}
