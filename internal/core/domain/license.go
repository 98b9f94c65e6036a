package domain

// OfflineLicense is the assertion bundle handed to the game client for
// offline validation. It carries no expiry of its own: the client compares
// LicenseEndDate against its clock and must trust the detached signature.
// Generated fresh on every issuance, never persisted server-side.
type OfflineLicense struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	LicenseEndDate int64  `json:"licenseEndDate"`
	IssuedAt       int64  `json:"issuedAt"`
}
