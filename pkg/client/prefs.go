package client

import (
	"fmt"
)

// BackgroundPrefs remembers the chosen background style of each club page
type BackgroundPrefs struct {
	store TokenStore
}

// NewBackgroundPrefs uses the client's store
func NewBackgroundPrefs(c *Client) *BackgroundPrefs {
	return &BackgroundPrefs{store: c.store}
}

// BackgroundKey is the store key for a club's style
func BackgroundKey(clubID int64) string {
	return fmt.Sprintf("club_bg_%d", clubID)
}

// Get returns the cached style, falling back to the server's value.
func (b *BackgroundPrefs) Get(clubID int64, serverStyle string) string {
	if v, ok := b.store.Get(BackgroundKey(clubID)); ok && v != "" {
		return v
	}
	return serverStyle
}

// Set caches style for the club
func (b *BackgroundPrefs) Set(clubID int64, style string) error {
	return b.store.Set(BackgroundKey(clubID), style)
}
