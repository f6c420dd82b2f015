package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

var ErrJournalAPI = errors.New("journal api")

// APIError is a non-2xx response from the journal store. The status code is
// preserved so callers can pass the store's own status through to their
// clients.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("journal api (HTTP Status: %d): %s", e.StatusCode, e.Detail)
}

// ErrorResponse describes the JSON the journal store responds with when an
// API call fails.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func toErrorFromResponse(resp *resty.Response) error {
	var errorResponse ErrorResponse
	detail := strings.TrimSpace(string(resp.Body()))
	if err := json.Unmarshal(resp.Body(), &errorResponse); err == nil && errorResponse.Detail != "" {
		detail = errorResponse.Detail
	}

	return errors.Join(ErrJournalAPI, &APIError{StatusCode: resp.StatusCode(), Detail: detail})
}
