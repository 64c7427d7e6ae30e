package tokenstore

import (
	"sync"
	"time"
)

// in-memory token revocation store, keyed by jti. A revoked jti only
// matters while its token is still valid, so entries expire after the
// 24h token lifetime instead of accumulating forever. A multi-instance
// deployment would need Redis or the DB instead.
var (
	mu        sync.Mutex
	revoked   = map[string]time.Time{} // jti -> retention deadline
	retention = 24 * time.Hour
)

// SetRetention adjusts how long revoked jtis are remembered. It should
// track the issued token TTL.
func SetRetention(d time.Duration) {
	mu.Lock()
	retention = d
	mu.Unlock()
}

func RevokeToken(jti string) {
	if jti == "" {
		return
	}
	now := time.Now()
	mu.Lock()
	defer mu.Unlock()
	purgeLocked(now)
	revoked[jti] = now.Add(retention)
}

func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	mu.Lock()
	defer mu.Unlock()
	deadline, ok := revoked[jti]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(revoked, jti)
		return false
	}
	return true
}

// purgeLocked drops entries whose tokens have expired anyway; caller must
// hold mu.
func purgeLocked(now time.Time) {
	for jti, deadline := range revoked {
		if now.After(deadline) {
			delete(revoked, jti)
		}
	}
}
