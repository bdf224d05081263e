package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. The pipeline hashes the JSON form
// of a layout with it, so two grids that lay out identically share their
// artifacts whichever grid file or flags produced them.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest returns kind, a colon, and the [Hash] of the JSON encoding of
// parts. Parts are strings and [ArtifactKeyOpts], which always encode.
func digest(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
