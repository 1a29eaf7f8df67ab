package utils

import (
	"encoding/json"
	"fmt"
)

func isTradierNull(v json.RawMessage) bool {
	s := string(v)
	return s == "null" || s == "\"null\"" || s == ""
}

// ParseTradierResponse unwraps Tradier's two level envelope, e.g. {"options": {"option": [...]}}.
// The inner value may be a single object, a list, or null when nothing matched.
func ParseTradierResponse[T any](response []byte) ([]T, error) {
	header := make(map[string]json.RawMessage)

	if err := json.Unmarshal(response, &header); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal header in response: %w", err)
	}

	if len(header) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in header, got %v: %s", len(header), string(response))
	}

	var v json.RawMessage
	for _, value := range header {
		v = value
	}

	if isTradierNull(v) {
		return []T{}, nil
	}

	data := make(map[string]json.RawMessage)
	if err := json.Unmarshal(v, &data); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal data in response: %w", err)
	}

	if len(data) != 1 {
		return nil, fmt.Errorf("ParseTradierResponse(): expected 1 key in data, got %v: %s", len(data), string(v))
	}

	for _, value := range data {
		v = value
	}

	if isTradierNull(v) {
		return []T{}, nil
	}

	dtos := []T{}

	var singleDTO T
	if err := json.Unmarshal(v, &singleDTO); err == nil {
		return append(dtos, singleDTO), nil
	}

	if err := json.Unmarshal(v, &dtos); err != nil {
		return nil, fmt.Errorf("ParseTradierResponse(): failed to unmarshal dtos in response: %w", err)
	}

	return dtos, nil
}
