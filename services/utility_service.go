package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// minCandidateLength is the shortest sentence fragment worth verifying when
// splitting a page of text into candidate claims.
const minCandidateLength = 10

// UtilityService handles text processing and normalization for claims
type UtilityService struct{}

// NewUtilityService creates a new utility service
func NewUtilityService() *UtilityService {
	return &UtilityService{}
}

// NormalizeClaim trims surrounding whitespace from the claim text. No
// semantic normalization is performed beyond trimming.
func (u *UtilityService) NormalizeClaim(claim string) string {
	return strings.TrimSpace(claim)
}

// Fingerprint derives the cache key for a claim: the hex sha256 digest of the
// normalized text. Textually identical claims always share a fingerprint.
func (u *UtilityService) Fingerprint(claim string) string {
	digest := sha256.Sum256([]byte(u.NormalizeClaim(claim)))
	return hex.EncodeToString(digest[:])
}

// SplitClaims splits a block of text into candidate claims: sentences split
// on '.', trimmed, with fragments of minCandidateLength characters or fewer
// discarded.
func (u *UtilityService) SplitClaims(text string) []string {
	fragments := strings.Split(text, ".")
	candidates := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if len(trimmed) > minCandidateLength {
			candidates = append(candidates, trimmed)
		}
	}
	return candidates
}
