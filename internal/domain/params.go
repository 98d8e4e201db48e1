package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Documented fallbacks for blank or malformed numeric inputs. Malformed
// input never rejects an operation; it falls back to these.
const (
	DefaultBanDeleteDays = 0
	DefaultPruneDays     = 7
	DefaultPurgeLimit    = -1
	DefaultRepeatCount   = 1
	DefaultChannelType   = 0
)

// IntOrDefault parses raw as a base-10 integer, falling back when raw is
// blank or not a number.
func IntOrDefault(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// BoolOrDefault parses raw with strconv semantics, falling back when raw is
// blank or unrecognised.
func BoolOrDefault(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

var offsetToken = regexp.MustCompile(`(\d+)([smhd])`)

var offsetUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseOffset sums every <int><unit> token in raw (units s, m, h, d).
// Non-matching runs are ignored, so "3m5x" is three minutes and "abc" is
// zero.
func ParseOffset(raw string) time.Duration {
	var total time.Duration
	for _, match := range offsetToken.FindAllStringSubmatch(raw, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		total += time.Duration(n) * offsetUnits[match[2]]
	}
	return total
}

// OffsetFrom returns now plus the offset encoded in raw.
func OffsetFrom(now time.Time, raw string) time.Time {
	return now.Add(ParseOffset(raw))
}

// PlaceholderVars feeds message template expansion for bulk messaging.
type PlaceholderVars struct {
	ServerName string
	InstanceID string
	OwnerID    string
	MemberID   string
}

// ExpandPlaceholders substitutes the %server%, %instance%, %owner% and
// %member% tokens. Instance, owner and member expand to mentions.
func ExpandPlaceholders(template string, vars PlaceholderVars) string {
	r := strings.NewReplacer(
		"%server%", vars.ServerName,
		"%instance%", mention(vars.InstanceID),
		"%owner%", mention(vars.OwnerID),
		"%member%", mention(vars.MemberID),
	)
	return r.Replace(template)
}

func mention(id string) string {
	if id == "" {
		return ""
	}
	return "<@" + id + ">"
}
