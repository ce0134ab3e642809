// Package confirmid encodes numeric user identifiers into the opaque path
// segment of registration confirmation links, and decodes them back.
//
// The encoding is reversible base64 over the decimal representation; the
// link carries no expiry and no single-use marker.
package confirmid

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Encode turns a user id into the confirmation-link path segment.
func Encode(id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// Decode reverses Encode. It fails on anything that is not base64 over a
// decimal integer.
func Decode(encoded string) (int64, error) {
	const op = "confirmid.Decode"
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
