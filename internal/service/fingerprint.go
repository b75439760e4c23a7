package service

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/model"
	"golang.org/x/crypto/blake2b"
)

// fingerprint identifies a transcript evaluated under a scale. encoding/json
// writes map keys sorted, so equal inputs always hash equally.
func fingerprint(t model.Transcript, scale grading.Scale) (string, error) {
	data, err := json.Marshal(struct {
		Transcript model.Transcript `json:"transcript"`
		Scale      grading.Scale    `json:"scale"`
	}{t, scale})
	if err != nil {
		return "", fmt.Errorf("marshal fingerprint input: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}
