package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSourceHash fingerprints raw content as sha256(postUrl + caption +
// transcript), hex encoded. Absent parts count as empty strings.
func GenerateSourceHash(postUrl string, caption, transcript *string) string {
	h := sha256.New()
	h.Write([]byte(postUrl))
	if caption != nil {
		h.Write([]byte(*caption))
	}
	if transcript != nil {
		h.Write([]byte(*transcript))
	}
	return hex.EncodeToString(h.Sum(nil))
}
