package user

import (
	"os"
	"os/user"

	"github.com/google/uuid"
)

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// NewSourceTag returns a tag unique to one open view of the board, of the
// form "<username>/<random>". Views compare tags on board_updated events to
// tell their own writes from someone else's.
func NewSourceTag() string {
	return GetCurrentUsername() + "/" + uuid.New().String()[:8]
}
