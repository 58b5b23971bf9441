package badge

import "strings"

// ProductGIDPrefix is the canonical global id prefix for catalog products.
const ProductGIDPrefix = "gid://shopify/Product/"

// NormalizeProductID turns a numeric product id or a product gid into the
// canonical gid form. It reports false for anything else, including gids of
// other resource types.
func NormalizeProductID(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	numeric := strings.TrimPrefix(ref, ProductGIDPrefix)
	if numeric == ref && strings.HasPrefix(ref, "gid://") {
		return "", false
	}
	if !isDigits(numeric) {
		return "", false
	}
	return ProductGIDPrefix + numeric, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
