package discord

import (
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into an embed color.
func ParseHexColor(s string) (int, bool) {
	if !hexColorPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
