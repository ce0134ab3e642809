package device

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUserAgent(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Class
	}{
		{
			"desktop chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			Desktop,
		},
		{
			"desktop firefox on linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			Desktop,
		},
		{
			"iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148",
			Mobile,
		},
		{
			"android phone",
			"Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36",
			Mobile,
		},
		{
			"ipad",
			"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148",
			Tablet,
		},
		{
			"android tablet without mobile marker",
			"Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
			Tablet,
		},
		{
			"kindle",
			"Mozilla/5.0 (Linux; U; Android 4.0.3; Kindle Fire) AppleWebKit/534.30 Silk/3.0",
			Tablet,
		},
		{"empty user agent", "", Desktop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromUserAgent(tc.ua))
		})
	}
}

func TestClassify(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Mobile/15E148")
	assert.Equal(t, Mobile, Classify(r))
}
