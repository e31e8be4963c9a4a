package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
)

// get issues one GET request against resource and decodes the JSON body into out.
// Any status >= 400 becomes an HTTP_ERROR carrying the status code.
func (s *youTubeService) get(ctx context.Context, resource string, query url.Values, out any) error {
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("key", s.apiKey)

	reqURL := googleapi.ResolveRelative(s.baseURL, resource) + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to build request")
	}

	s.log.Debug().Str("resource", resource).Msg("api request")

	res, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeExternal, fmt.Sprintf("failed to call %s", resource))
	}
	defer googleapi.CloseBody(res)

	if res.StatusCode >= http.StatusBadRequest {
		// CheckResponse reads the error body into a *googleapi.Error for the cause chain
		return errors.NewHTTP(res.StatusCode, googleapi.CheckResponse(res))
	}
	if err := googleapi.CheckResponse(res); err != nil {
		return errors.Wrap(err, errors.CodeExternal, fmt.Sprintf("unexpected response from %s", resource))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.CodeExternal, fmt.Sprintf("failed to parse %s response", resource))
	}

	return nil
}
