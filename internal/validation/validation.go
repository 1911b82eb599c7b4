package validation

import (
	"math"
	"net"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPlaceTextLength bounds free-text place queries, in runes.
const MaxPlaceTextLength = 120

// ValidatePlaceText checks that a place query is non-blank, reasonably short
// and free of control characters.
func ValidatePlaceText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "place is required"
	}
	if utf8.RuneCountInString(text) > MaxPlaceTextLength {
		return false, "place is too long"
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return false, "place contains control characters"
		}
	}
	return true, ""
}

// ValidateCoordinates checks that lat/lng are finite and within range.
func ValidateCoordinates(lat, lng float64) (bool, string) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false, "coordinates must be finite"
	}
	if lat < -90 || lat > 90 {
		return false, "latitude must be between -90 and 90"
	}
	if lng < -180 || lng > 180 {
		return false, "longitude must be between -180 and 180"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateImageURL checks an image URL handed back to clients. On top of
// ValidateURL it rejects localhost and literal private addresses; hostnames
// are not resolved.
func ValidateImageURL(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return false, "URL points to a private or reserved IP address"
	}
	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return false, "URL points to a private or reserved IP address"
	}
	return true, ""
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	if ip.IsPrivate() || ip.IsUnspecified() {
		return true
	}

	// Azure metadata endpoint; 169.254.169.254 is already link-local.
	return ip.Equal(net.ParseIP("168.63.129.16"))
}
