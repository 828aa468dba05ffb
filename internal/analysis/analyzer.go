// Package analysis sequences a G-code upload through local extraction,
// conditional escalation to a remote deep scan, and the merge of both
// results.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/printforge/printcost/internal/gcode"
)

// Status tracks where a single in-flight analysis currently is. Callers
// must not start a second upload until the analyzer is back in a terminal
// state.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusParsing      Status = "parsing"
	StatusDeepScanning Status = "deepScanning"
	StatusFailed       Status = "failed"
	StatusSucceeded    Status = "succeeded"
)

// Method records which extraction path produced the final values.
type Method string

const (
	MethodLocal Method = "local"
	MethodAI    Method = "ai"
)

var (
	// ErrUnsupportedFile is returned for file names without a .gcode
	// extension, before any parsing is attempted.
	ErrUnsupportedFile = errors.New("not a .gcode file")

	// ErrNoExtractableData is returned when local and remote extraction
	// together found no usable field.
	ErrNoExtractableData = errors.New("no usable print data found in file")

	// ErrDeepScanFailed wraps a failure of the remote deep-scan service.
	// The failure is terminal for the upload; there is no retry.
	ErrDeepScanFailed = errors.New("deep scan service failed")
)

// headerLines bounds the prefix sent to the deep scanner. Slicer metadata
// lives at the top of the file, so this keeps request size flat regardless
// of model complexity.
const headerLines = 200

// DeepScanner extracts print metadata from a G-code header using a remote
// service. Implementations may fail with network or service errors.
type DeepScanner interface {
	Extract(ctx context.Context, header string) (gcode.Extraction, error)
}

// Result is the outcome of a successful analysis.
type Result struct {
	// JobName is the uploaded file name with its extension stripped.
	JobName    string
	Method     Method
	Extraction gcode.Extraction
}

// Analyzer runs uploads through the two-stage extraction pipeline. The
// zero value is not usable; construct with New.
type Analyzer struct {
	scanner DeepScanner

	mu     sync.Mutex
	status Status
}

// New creates an analyzer. scanner may be nil, in which case escalation is
// skipped and local extraction has to stand on its own.
func New(scanner DeepScanner) *Analyzer {
	return &Analyzer{scanner: scanner, status: StatusIdle}
}

// Status returns the state of the current or most recent analysis.
func (a *Analyzer) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Analyzer) setStatus(s Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

// Analyze runs one upload through the pipeline: local parse, escalation to
// the deep scanner when either print time or filament weight is missing,
// field-wise merge with remote values taking precedence, and a final check
// that anything usable was found at all.
//
// A wrong file extension is rejected up front without touching the status.
func (a *Analyzer) Analyze(ctx context.Context, fileName string, content []byte) (Result, error) {
	ext := filepath.Ext(fileName)
	if !strings.EqualFold(ext, ".gcode") {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, fileName)
	}

	a.setStatus(StatusParsing)

	text := string(content)
	ex := gcode.Parse(text)
	method := MethodLocal

	if a.scanner != nil && needsDeepScan(ex) {
		a.setStatus(StatusDeepScanning)

		remote, err := a.scanner.Extract(ctx, header(text))
		if err != nil {
			a.setStatus(StatusFailed)
			return Result{}, fmt.Errorf("%w: %v", ErrDeepScanFailed, err)
		}

		ex = gcode.Merge(ex, remote)
		method = MethodAI
	}

	if ex.Empty() {
		a.setStatus(StatusFailed)
		return Result{}, ErrNoExtractableData
	}

	a.setStatus(StatusSucceeded)
	return Result{
		JobName:    strings.TrimSuffix(fileName, ext),
		Method:     method,
		Extraction: ex,
	}, nil
}

// needsDeepScan decides escalation: the local result is insufficient when
// either of the two key fields is missing. Length alone does not suppress
// escalation.
func needsDeepScan(ex gcode.Extraction) bool {
	return ex.PrintTimeSeconds == nil || ex.FilamentWeightG == nil
}

// header returns the first headerLines lines of text.
func header(text string) string {
	lines := strings.SplitN(text, "\n", headerLines+1)
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}
	return strings.Join(lines, "\n")
}
