package session

import (
	"fmt"
	"regexp"
	"strings"
)

// Shop domains are plain hostnames: labels of letters, digits, and hyphens
// joined by dots. Underscores are deliberately excluded so they can serve as
// the session-id namespace separator.
var shopDomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.[a-z0-9][a-z0-9-]*)+$`)

// NormalizeShopDomain canonicalizes a shop domain: lowercases it, strips an
// optional scheme and trailing slash, and validates the hostname charset.
func NormalizeShopDomain(shop string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(shop))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")

	if !shopDomainRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidShopDomain, shop)
	}

	return s, nil
}
