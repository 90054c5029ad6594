package web

import "github.com/google/uuid"

// StableID derives a deterministic result id from a source prefix and a
// key such as a link, so repeated searches yield the same ids.
func StableID(prefix, key string) string {
	return prefix + "-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
