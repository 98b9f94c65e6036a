package domain

import "time"

// IPBlock denies all requests from a single address. ExpiresAt nil means
// permanent. Uniqueness on IP: inserting an existing address replaces the
// previous entry.
type IPBlock struct {
	IP        string     `json:"ip"`
	Reason    string     `json:"reason"`
	BlockedAt time.Time  `json:"blockedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Active reports whether the block applies at the given instant. An expired
// entry needs no deletion to stop applying.
func (b *IPBlock) Active(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// Until renders the block horizon for client responses.
func (b *IPBlock) Until() string {
	if b.ExpiresAt == nil {
		return "permanent"
	}
	return b.ExpiresAt.UTC().Format(time.RFC3339)
}
