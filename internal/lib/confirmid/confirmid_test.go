package confirmid

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_Roundtrip(t *testing.T) {
	for _, id := range []int64{1, 42, 1000000, 9223372036854775807} {
		got, err := Decode(Encode(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestEncode_IsBase64OfDecimal(t *testing.T) {
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("42")), Encode(42))
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
	}{
		{"not base64", "%%%"},
		{"base64 of non-numeric", base64.StdEncoding.EncodeToString([]byte("pera"))},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.encoded)
			require.Error(t, err)
		})
	}
}
