package integration

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"admissionapi/internal/model"
)

// loggingClient is a stand-in Client for environments without real eSocial /
// Thomson Reuters credentials. It logs the dispatch as a JSON line and
// fabricates a response reference.
type loggingClient struct {
	enc *json.Encoder
}

// NewLoggingClient returns a Client that records dispatches to stdout.
func NewLoggingClient() Client {
	return NewLoggingClientWithWriter(os.Stdout)
}

// NewLoggingClientWithWriter is NewLoggingClient with an explicit sink.
func NewLoggingClientWithWriter(w io.Writer) Client {
	return &loggingClient{enc: json.NewEncoder(w)}
}

func (c *loggingClient) Dispatch(_ context.Context, caseID string, target model.DispatchTarget) (string, error) {
	ref := "local-" + uuid.NewString()
	_ = c.enc.Encode(map[string]any{
		"ts":           time.Now().UTC().Format(time.RFC3339Nano),
		"level":        "info",
		"msg":          "integration_dispatch",
		"case_id":      caseID,
		"target":       target,
		"response_ref": ref,
	})
	return ref, nil
}
