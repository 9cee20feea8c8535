package discord

import (
	"strconv"
)

// user.go represents the structures for discord users and guild members.

const cdnURL = "https://cdn.discordapp.com"

// User represents a user on discord.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	GlobalName    string    `json:"global_name,omitempty"`
	Discriminator string    `json:"discriminator,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Bot           bool      `json:"bot,omitempty"`
}

// DisplayName returns the name shown on a card: the global display
// name when set, falling back to the account username.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

// AvatarURL returns the CDN URL for the user's avatar at card size.
// Users without a custom avatar get one of the default embed avatars.
func (u *User) AvatarURL() string {
	if u.Avatar == "" {
		return cdnURL + "/embed/avatars/" + strconv.FormatUint(u.defaultAvatarIndex(), 10) + ".png"
	}

	return cdnURL + "/avatars/" + u.ID.String() + "/" + u.Avatar + ".png?size=128"
}

// defaultAvatarIndex follows the CDN rules: legacy discriminators use
// discriminator modulo 5, migrated users derive from the id timestamp.
func (u *User) defaultAvatarIndex() uint64 {
	if u.Discriminator != "" && u.Discriminator != "0" {
		disc, err := strconv.ParseUint(u.Discriminator, 10, 64)
		if err == nil {
			return disc % 5
		}
	}

	id, err := strconv.ParseUint(u.ID.String(), 10, 64)
	if err != nil {
		return 0
	}

	return (id >> 22) % 6
}

// GuildMember represents a guild member on discord.
type GuildMember struct {
	User     *User      `json:"user,omitempty"`
	GuildID  *Snowflake `json:"guild_id,omitempty"`
	Nick     string     `json:"nick,omitempty"`
	Avatar   string     `json:"avatar,omitempty"`
	JoinedAt string     `json:"joined_at,omitempty"`
	Pending  bool       `json:"pending,omitempty"`
}
