package tui

import "fmt"

// StatusKind selects how the status line renders a message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

// Canonical short status messages used across the app.
const (
	MsgSigningIn      = "Signing in…"
	MsgLoadingLibrary = "Loading library…"
	MsgLoadingContent = "Loading content…"
	MsgLoadingMore    = "Loading more…"
	MsgRegistering    = "Registering…"
	MsgJoining        = "Joining…"
	MsgNoResults      = "No results"
	MsgFiltersCleared = "Filters cleared"
	MsgSignedOut      = "Signed out"
)

func MsgResultsCount(shown, total int) string {
	if total == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d of %d results", shown, total)
}

func MsgWelcome(name string) string {
	if name == "" {
		return "Welcome back"
	}
	return fmt.Sprintf("Welcome back, %s", name)
}

func MsgRegistered(title string) string {
	return fmt.Sprintf("Registered for '%s'", title)
}

func MsgJoined(title string) string {
	return fmt.Sprintf("Joined '%s'", title)
}
