package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

func isCircuitFailure(err error) bool {
	return errors.Is(err, errAnubisTransient)
}

// principalCacheKey keys cached principals by token digest so raw tokens never sit in memory.
func principalCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "principal:" + hex.EncodeToString(sum[:])
}

// introspectionURL resolves path against baseURL; an absolute path replaces the base.
func introspectionURL(baseURL, path string) string {
	base := strings.TrimSpace(baseURL)
	path = strings.TrimSpace(path)
	if ref, err := url.Parse(path); err == nil && ref.IsAbs() {
		return ref.String()
	}
	if path == "" {
		return strings.TrimSuffix(base, "/")
	}

	joined, err := url.JoinPath(base, path)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}
