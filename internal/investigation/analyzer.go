package investigation

import (
	"context"
	"errors"

	"github.com/linnemanlabs/sentinel/internal/alert"
)

// Analyzer is the boundary to the external reasoning service. It never
// retries internally; retry is an analyst-initiated session action.
type Analyzer interface {
	Analyze(ctx context.Context, al *alert.Alert) (*Result, error)
}

// FailureKind classifies analysis failures. This classification is the
// only thing the rest of the system branches on.
type FailureKind string

const (
	// FailRateLimited means the service signalled quota/backpressure; the
	// analyst should wait or use the synthetic fallback.
	FailRateLimited FailureKind = "rate_limited"

	// FailService covers any other request failure.
	FailService FailureKind = "service_error"

	// FailMalformed means the response violated the mandated schema.
	// Treated as a service error upstream.
	FailMalformed FailureKind = "malformed_response"
)

// AnalysisError is the normalized failure from the reasoning boundary.
type AnalysisError struct {
	Kind    FailureKind
	Message string
}

func (e *AnalysisError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Classify maps any error from an Analyzer into its failure kind and
// user-facing message. Unrecognized errors are service errors.
func Classify(err error) (FailureKind, string) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind, ae.Message
	}
	return FailService, err.Error()
}
