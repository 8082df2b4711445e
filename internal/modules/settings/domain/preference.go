package domain

// Preference keys the client persists across sessions. Values are strings;
// boolean flags store "true".
const (
	KeyOnboardingSeen        = "onboarding_seen"
	KeyEmailCaptureDismissed = "email_capture_dismissed"
	KeyLastChangelogSeen     = "last_changelog_seen"
)

const FlagTrue = "true"

func KnownKey(key string) bool {
	switch key {
	case KeyOnboardingSeen, KeyEmailCaptureDismissed, KeyLastChangelogSeen:
		return true
	}
	return false
}
