package services

import "strings"

// DigestRegistry records the content digests already exported in one run.
// It is not safe for concurrent use.
type DigestRegistry struct {
	seen map[string]struct{}
}

// NewDigestRegistry creates an empty registry.
func NewDigestRegistry() *DigestRegistry {
	return &DigestRegistry{seen: make(map[string]struct{})}
}

// TryClaim records the digest and returns true on its first claim.
// Every later claim of the same digest returns false.
func (r *DigestRegistry) TryClaim(digest string) bool {
	key := strings.ToLower(digest)
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Len returns the number of claimed digests.
func (r *DigestRegistry) Len() int {
	return len(r.seen)
}
