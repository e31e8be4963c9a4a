package common

import (
	"net/http"
)

// HTTPClient is interface for issuing HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates the HTTPClient used against the YouTube Data API.
// No timeout is set; callers bound requests through their context.
func NewHTTPClient() HTTPClient {
	return &http.Client{Transport: http.DefaultTransport}
}
