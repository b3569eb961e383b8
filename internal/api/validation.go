package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"pushauth/internal/constants"
)

var errInvalidPayload = errors.New(constants.MsgInvalidPayload)

// decodeBody reads a single JSON object into dst. Unknown fields are
// accepted. An empty body decodes to the zero value so the field rules can
// report what is missing.
func decodeBody(body io.Reader, dst any) error {
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidPayload
	}

	return nil
}
