package credential

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// Encode renders a credential as an environment variable payload.
//
// Without recipients the payload is single-line base64, as read by EnvSource.
// With age recipients ("age1...") it is an ASCII-armored age file, as read by
// AgeSource.
func Encode(plaintext []byte, recipients ...string) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: nothing to encode", ErrMalformed)
	}

	if len(recipients) == 0 {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(plaintext)))
		base64.StdEncoding.Encode(encoded, plaintext)

		return encoded, nil
	}

	parsed, err := age.ParseRecipients(strings.NewReader(strings.Join(recipients, "\n")))
	if err != nil {
		return nil, fmt.Errorf("parse age recipients: %w", err)
	}

	var buf bytes.Buffer

	armorWriter := armor.NewWriter(&buf)

	writer, err := age.Encrypt(armorWriter, parsed...)
	if err != nil {
		return nil, fmt.Errorf("encrypt credential: %w", err)
	}

	_, err = writer.Write(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt credential: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("finish age stream: %w", err)
	}

	err = armorWriter.Close()
	if err != nil {
		return nil, fmt.Errorf("finish armor: %w", err)
	}

	return buf.Bytes(), nil
}
