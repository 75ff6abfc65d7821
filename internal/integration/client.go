// Package integration abstracts the external systems a finished admission is
// handed to. The wire protocols (eSocial events, Thomson Reuters payloads)
// live behind this interface; the core only sees an opaque response
// reference.
package integration

import (
	"context"

	"admissionapi/internal/model"
)

// Client dispatches one case to an external target. Implementations own
// their retry policy; the dispatch gate never retries.
type Client interface {
	Dispatch(ctx context.Context, caseID string, target model.DispatchTarget) (responseRef string, err error)
}
