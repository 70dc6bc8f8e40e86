package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/itemvault/internal/common"
)

// errorFromResponse maps an error response onto the shared sentinel errors,
// keeping the server's message as context.
func errorFromResponse(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusServiceUnavailable:
		sentinel = common.ErrorUnavailable
	default:
		sentinel = common.ErrorInternal
	}

	return fmt.Errorf("%w: %s", sentinel, msg)
}
