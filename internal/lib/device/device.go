// Package device classifies the client device from the User-Agent header.
// The class selects the lifetime of issued tokens: desktop is the default,
// tablets and phones get shorter windows.
package device

import (
	"net/http"
	"strings"
)

// Class is the device category of a request.
type Class string

const (
	// Desktop is the default class when nothing else matches.
	Desktop Class = "desktop"
	// Tablet covers iPads and Android tablets.
	Tablet Class = "tablet"
	// Mobile covers phones.
	Mobile Class = "mobile"
)

var tabletMarkers = []string{"ipad", "tablet", "kindle", "silk", "playbook"}

var mobileMarkers = []string{"iphone", "ipod", "mobile", "blackberry", "windows phone", "opera mini"}

// Classify inspects the User-Agent of a request. Tablet markers are checked
// first because Android tablet agents also contain "android".
func Classify(r *http.Request) Class {
	return FromUserAgent(r.UserAgent())
}

// FromUserAgent classifies a raw User-Agent string.
func FromUserAgent(ua string) Class {
	ua = strings.ToLower(ua)
	for _, m := range tabletMarkers {
		if strings.Contains(ua, m) {
			return Tablet
		}
	}
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobile") {
		return Tablet
	}
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return Mobile
		}
	}
	return Desktop
}
