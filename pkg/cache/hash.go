package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "<kind>:<sha256>" from a document hash and the options
// that shape the artifact. Options are JSON-encoded, so field order in the
// key structs is part of the key.
func hashKey(kind, docHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(docHash))
	h.Write([]byte{0})
	enc, err := json.Marshal(opts)
	if err != nil {
		// Unencodable options key on the error text.
		enc = []byte(err.Error())
	}
	h.Write(enc)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Documents use it as their content
// hash, so two documents that encode identically share rendered artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
