package esi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FetchError is returned when the resource API answers with a non success
// status, it carries the endpoint and the status for the caller to map to an
// HTTP response, no upstream body detail is kept
type FetchError struct {
	Endpoint   string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request to %v failed with status : %v", e.Endpoint, e.StatusCode)
}

// Fetch performs a single GET against the resource API attaching the bearer
// token when one is given, there is no retry, the caller treats any failure as
// final for the request
func Fetch(httpClient *http.Client, endpointURL string, target interface{}, token string) error {
	if httpClient == nil {
		return errors.New("no http client specified")
	}
	req, err := http.NewRequest("GET", endpointURL, nil)
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")
	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %v", token))
	}

	r, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != 200 {
		return &FetchError{
			Endpoint:   endpointURL,
			StatusCode: r.StatusCode,
		}
	}
	return json.NewDecoder(r.Body).Decode(target)
}
