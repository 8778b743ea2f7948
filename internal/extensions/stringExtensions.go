package extensions

func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// MaskToken keeps the first and last four characters so a user can tell tokens apart.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}

	return token[:4] + "…" + token[len(token)-4:]
}
