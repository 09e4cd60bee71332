package user

import (
	"os"
	"os/user"
	"strings"
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

// Resolve returns the active user name: the configured value when set,
// otherwise the OS username
func Resolve(configured string) string {
	if name := strings.TrimSpace(configured); name != "" {
		return name
	}
	return GetCurrentUsername()
}
