package extensions

import (
	"strconv"
	"strings"
	"unicode"
)

// IsValidIp accepts dotted IPv4 quads only, the form servers are stored in.
func IsValidIp(ip string) bool {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
		if _, err := strconv.ParseUint(part, 10, 8); err != nil {
			return false
		}
	}

	return true
}

func IsValidServerName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return false
		}
	}

	return true
}
