package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// LicenseSigner produces the tamper-evident signature attached to offline
// license assertions: HMAC-SHA256 over "userID:licenseEndDate", hex encoded.
// Deterministic, so the game client can cache and re-verify the same bundle.
// The signing secret is distinct from the session-signing secret; it proves
// origin only; freshness comes from the assertion's issuedAt, which is the
// consumer's concern.
type LicenseSigner struct {
	secret []byte
}

func NewLicenseSigner(secret string) *LicenseSigner {
	return &LicenseSigner{secret: []byte(secret)}
}

// Sign returns the detached signature for the (userID, licenseEndDate) pair.
func (s *LicenseSigner) Sign(userID string, licenseEnd int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(userID + ":" + strconv.FormatInt(licenseEnd, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the pair, in constant time.
func (s *LicenseSigner) Verify(userID string, licenseEnd int64, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(userID + ":" + strconv.FormatInt(licenseEnd, 10)))
	return hmac.Equal(got, mac.Sum(nil))
}
