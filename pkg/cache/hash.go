package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey maps an arbitrary key (usually an avatar URL) to a 16-character
// filesystem-safe name.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}
