package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/handler"
)

func datastarRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/users/validate", nil)
	req.Header.Set("Datastar-Request", "true")
	return req
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	assert.True(t, handler.IsDataStar(datastarRequest()))

	sse := httptest.NewRequest(http.MethodGet, "/", nil)
	sse.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(sse))

	assert.True(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)))
	assert.False(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestSignals(t *testing.T) {
	t.Parallel()

	signals := map[string]any{"errors": map[string]string{"tel": "bad"}}

	t.Run("datastar patch", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Signals(signals).Render(rec, datastarRequest()))

		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
		assert.Contains(t, rec.Body.String(), `{"errors":{"tel":"bad"}}`)
	})

	t.Run("plain json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Signals(signals).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"errors":{"tel":"bad"}}`, rec.Body.String())
	})
}
