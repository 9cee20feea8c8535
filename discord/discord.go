package discord

import (
	jsoniter "github.com/json-iterator/go"
)

// discord.go contains the base types shared by the rest of the package.

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snowflake represents a discord object id. It is kept in its wire
// string form; the only arithmetic ever done on one is the default
// avatar derivation in user.go.
type Snowflake string

func (s Snowflake) String() string {
	return string(s)
}

// IsZero returns true when no id was provided.
func (s Snowflake) IsZero() bool {
	return s == ""
}
