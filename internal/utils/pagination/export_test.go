package pagination

import "encoding/base64"

// EncodeTokenRaw wraps an arbitrary payload the way EncodeToken does.
func EncodeTokenRaw(payload string) string {
	return base64.URLEncoding.EncodeToString([]byte(payload))
}
