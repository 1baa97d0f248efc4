package metadata

import "github.com/tailscale/hujson"

// NormalizeJSONC turns JSON with comments and trailing commas into plain JSON.
// Comments and trailing commas become spaces so that byte offsets in decode
// errors still point into the original file.
func NormalizeJSONC(data []byte) ([]byte, error) {
	return hujson.Standardize(data)
}
