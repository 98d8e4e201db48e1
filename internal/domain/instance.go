package domain

import (
	"strconv"
	"time"
)

type InstanceID string

// AccountKind distinguishes bot tokens from user tokens. The gateway
// collaborator authenticates differently for each.
type AccountKind string

const (
	AccountKindBot  AccountKind = "bot"
	AccountKindUser AccountKind = "user"
)

func (k AccountKind) Valid() bool {
	return k == AccountKindBot || k == AccountKindUser
}

// Instance is a stored credential plus connection preferences for one
// Discord account. Immutable once stored; updates go through remove+re-add.
type Instance struct {
	ID              InstanceID
	Token           string
	Kind            AccountKind
	TimeoutDisabled bool
	NoIntents       bool
	Tag             string
	AvatarURL       string
	CreatedAt       string
}

// User is the identity the gateway reports for a connected account.
type User struct {
	ID            string
	Username      string
	Discriminator string
	AvatarURL     string
	Bot           bool
}

// Tag renders the classic name#discriminator form, or the bare username for
// accounts migrated to the single-username system (discriminator "0").
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// discordEpoch is the millisecond timestamp Discord snowflakes count from.
const discordEpoch = 1420070400000

// SnowflakeTime extracts the creation time embedded in a Discord snowflake
// id. Returns the zero time for ids that are not numeric.
func SnowflakeTime(id string) time.Time {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}
	}
	ms := int64(n>>22) + discordEpoch
	return time.UnixMilli(ms).UTC()
}
