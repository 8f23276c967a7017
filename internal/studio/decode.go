package studio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedShape is returned when a collection body is neither an
// envelope carrying a known key nor a bare JSON array.
var ErrUnexpectedShape = errors.New("unexpected collection shape")

// defaultEnvelopeKeys are tried after the endpoint-specific keys.
var defaultEnvelopeKeys = []string{"items", "data"}

// DecodeCollection decodes a collection body. The enveloped shape
// ({"<key>": [...]}) is tried first, using envelopeKeys followed by "items"
// and "data"; a bare array is accepted next. A JSON null, at the top level
// or under a known key with no array elsewhere, is an empty collection.
func DecodeCollection[T any](body []byte, envelopeKeys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		keys := append(append([]string(nil), envelopeKeys...), defaultEnvelopeKeys...)
		sawNull := false
		for _, key := range keys {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			raw = bytes.TrimSpace(raw)
			if bytes.Equal(raw, []byte("null")) {
				sawNull = true
				continue
			}
			if len(raw) == 0 || raw[0] != '[' {
				continue
			}
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("decode %q items: %w", key, err)
			}
			return items, nil
		}
		if sawNull {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%w: no array under %v", ErrUnexpectedShape, keys)
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return items, nil
	case 'n':
		if bytes.Equal(trimmed, []byte("null")) {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: body starts with %q", ErrUnexpectedShape, trimmed[0])
}
