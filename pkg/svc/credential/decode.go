package credential

import (
	"encoding/base64"
	"fmt"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
)

// Decode turns a payload into credential bytes according to encoding.
//
// Base64 payloads use the standard padded alphabet. ASCII whitespace, including
// the line breaks inserted by `base64` at 76 columns, is ignored. A payload that
// decodes to zero bytes is malformed: an empty file would be mistaken for a valid
// credential downstream.
func Decode(payload []byte, encoding v1alpha1.Encoding) ([]byte, error) {
	switch encoding {
	case v1alpha1.EncodingRaw:
		if len(payload) == 0 {
			return nil, fmt.Errorf("%w: payload is empty", ErrMalformed)
		}

		return payload, nil
	case v1alpha1.EncodingBase64, "":
		return decodeBase64(payload)
	default:
		return nil, fmt.Errorf("%w: %q", v1alpha1.ErrInvalidEncoding, encoding)
	}
}

func decodeBase64(payload []byte) ([]byte, error) {
	compact := stripASCIISpace(payload)
	if len(compact) == 0 {
		return nil, fmt.Errorf("%w: payload contains no base64 data", ErrMalformed)
	}

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))

	n, err := base64.StdEncoding.Decode(decoded, compact)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %w", ErrMalformed, err)
	}

	if n == 0 {
		return nil, fmt.Errorf("%w: payload decodes to no bytes", ErrMalformed)
	}

	return decoded[:n], nil
}

func stripASCIISpace(payload []byte) []byte {
	out := make([]byte, 0, len(payload))

	for _, b := range payload {
		switch b {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		default:
			out = append(out, b)
		}
	}

	return out
}
