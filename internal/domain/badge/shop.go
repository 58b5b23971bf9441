package badge

import (
	"net/url"
	"regexp"
	"strings"
)

// ShopSource says where a storefront request's shop came from.
type ShopSource string

const (
	ShopFromHeader  ShopSource = "header"
	ShopFromReferer ShopSource = "referer"
	ShopUnresolved  ShopSource = ""
)

const maxShopHostBytes = 255

var hostPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// NormalizeShop lower-cases and trims a shop domain and reports whether it is
// a plausible DNS host name with at least two labels.
func NormalizeShop(raw string) (string, bool) {
	shop := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".")
	if shop == "" || len(shop) > maxShopHostBytes || !hostPattern.MatchString(shop) {
		return "", false
	}
	return shop, true
}

// ShopFromRefererURL extracts the host of an http(s) referring page, without
// port or path.
func ShopFromRefererURL(referer string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(referer))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return NormalizeShop(u.Hostname())
}

// ResolveShop applies the two-step policy for anonymous lookups: a valid
// shop header wins; otherwise the referring page's host is used.
func ResolveShop(header, referer string) (string, ShopSource) {
	if shop, ok := NormalizeShop(header); ok {
		return shop, ShopFromHeader
	}
	if shop, ok := ShopFromRefererURL(referer); ok {
		return shop, ShopFromReferer
	}
	return "", ShopUnresolved
}
