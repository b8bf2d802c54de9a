package session

import "fmt"

// offlineIDPrefix namespaces offline ids. The "_" separator cannot occur in
// a shop domain, so offline and online ids are non-colliding by
// construction: an offline id is "offline_" followed by a domain with no
// underscore, while an online id always has its underscore after the domain.
const offlineIDPrefix = "offline_"

// OfflineSessionID returns the deterministic id of the shop-scoped offline
// session. The same shop always yields the same id; distinct shops never
// collide.
func OfflineSessionID(shop string) (string, error) {
	normalized, err := NormalizeShopDomain(shop)
	if err != nil {
		return "", err
	}
	return offlineIDPrefix + normalized, nil
}

// OnlineSessionID returns the deterministic id of a user-scoped online
// session: the shop domain joined to the token subject. Stable across every
// token the host mints for the same user on the same shop.
func OnlineSessionID(shop, userID string) (string, error) {
	normalized, err := NormalizeShopDomain(shop)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", fmt.Errorf("%w: empty token subject", ErrInvalidToken)
	}
	return normalized + "_" + userID, nil
}
