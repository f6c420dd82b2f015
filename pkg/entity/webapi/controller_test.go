package webapi

import (
	"bytes"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity/webapi/apimiddleware"
	"github.com/moonstream-to/entity/pkg/journal"
)

// setupEchoContext creates a test echo context with authorized credentials
// already resolved, the way the token middleware would leave them.
func setupEchoContext(method, target string, body []byte, queryParams url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set(apimiddleware.TokenContextKey, "test-token")
	c.Set(apimiddleware.AuthTypeContextKey, journal.AuthTypeBearer)

	return c, rec
}

// recordingReporter captures reports for assertions.
type recordingReporter struct {
	mu       sync.Mutex
	reports  []string
	lastTags []string
}

func (r *recordingReporter) Report(title, content string, tags []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, title)
	r.lastTags = tags
}

func (r *recordingReporter) Reports() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.reports...)
}

func (r *recordingReporter) LastTags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.lastTags...)
}
