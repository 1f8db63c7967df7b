package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader marks a request that accepts server-sent events.
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"

	// DataStarRequestHeader is set by the DataStar client on every request.
	DataStarRequestHeader = "Datastar-Request"
)

// IsDataStar reports whether the request came from the DataStar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// NewSSE creates a server-sent event generator. It writes the stream headers.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}

// ReadSignals decodes the DataStar signals of r into v. GET requests carry
// them in the query, other methods in the body.
func ReadSignals(r *http.Request, v any) error {
	return datastar.ReadSignals(r, v)
}
