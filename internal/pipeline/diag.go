package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel markers for the ways a single asset can be skipped. Every skip
// diagnostic wraps exactly one of these so callers and tests can classify
// outcomes with errors.Is.
var (
	ErrUnsupportedLayout = errors.New("unsupported layout")
	ErrMissingAsset      = errors.New("missing image size")
	ErrFetchFailure      = errors.New("fetch failure")
	ErrDecodeFailure     = errors.New("decode failure")
	ErrMeldGeometry      = errors.New("degenerate meld geometry")
)

// skip builds a classification-tagged diagnostic. The marker must be one of
// the sentinel errors above.
func skip(marker error, detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome is the result of producing one output asset: either the path the
// file was written to, or the diagnostic explaining why it was skipped.
type Outcome struct {
	Path string
	Err  error
}

// DiagnosticKind returns a stable name for the skip classification of err,
// or "ok" for nil.
func DiagnosticKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnsupportedLayout):
		return "unsupported_layout"
	case errors.Is(err, ErrMissingAsset):
		return "missing_asset"
	case errors.Is(err, ErrFetchFailure):
		return "fetch_failure"
	case errors.Is(err, ErrDecodeFailure):
		return "decode_failure"
	case errors.Is(err, ErrMeldGeometry):
		return "meld_geometry"
	default:
		return "error"
	}
}

// Summary counts outcomes across a batch.
type Summary struct {
	Written int
	Skipped int
}

// Add folds a set of outcomes into the summary.
func (s *Summary) Add(outcomes []Outcome) {
	for _, o := range outcomes {
		if o.Err != nil {
			s.Skipped++
		} else {
			s.Written++
		}
	}
}
