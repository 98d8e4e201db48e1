package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback int
		want     int
	}{
		{name: "plain number", raw: "5", fallback: 0, want: 5},
		{name: "blank falls back", raw: "", fallback: 7, want: 7},
		{name: "whitespace falls back", raw: "  ", fallback: 7, want: 7},
		{name: "garbage falls back", raw: "five", fallback: 1, want: 1},
		{name: "negative allowed", raw: "-1", fallback: 0, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntOrDefault(tt.raw, tt.fallback))
		})
	}
}

func TestBoolOrDefault(t *testing.T) {
	assert.True(t, BoolOrDefault("true", false))
	assert.False(t, BoolOrDefault("0", true))
	assert.True(t, BoolOrDefault("", true))
	assert.False(t, BoolOrDefault("maybe", false))
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "day and hours", raw: "1d2h", want: 26 * time.Hour},
		{name: "no matching tokens", raw: "abc", want: 0},
		{name: "unknown unit ignored", raw: "3m5x", want: 3 * time.Minute},
		{name: "all units", raw: "1d1h1m1s", want: 24*time.Hour + time.Hour + time.Minute + time.Second},
		{name: "empty", raw: "", want: 0},
		{name: "bare number ignored", raw: "42", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOffset(tt.raw))
		})
	}
}

func TestOffsetFrom(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(26*time.Hour), OffsetFrom(now, "1d2h"))
	assert.Equal(t, now, OffsetFrom(now, "abc"))
}

func TestExpandPlaceholders(t *testing.T) {
	got := ExpandPlaceholders("hi %member%, welcome to %server% run by %owner% via %instance%", PlaceholderVars{
		ServerName: "Test Guild",
		InstanceID: "1",
		OwnerID:    "2",
		MemberID:   "3",
	})
	assert.Equal(t, "hi <@3>, welcome to Test Guild run by <@2> via <@1>", got)

	assert.Equal(t, "plain text", ExpandPlaceholders("plain text", PlaceholderVars{}))
}
