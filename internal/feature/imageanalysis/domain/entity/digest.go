package entity

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest は画像データのBLAKE2b-256ハッシュ（16進）を返します。
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
