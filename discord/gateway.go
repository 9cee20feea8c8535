package discord

import (
	jsoniter "github.com/json-iterator/go"
)

// gateway.go contains the structures for the subset of the discord
// gateway protocol a member lookup exercises.

// GatewayOp represents the operation codes of a gateway message.
type GatewayOp uint8

const (
	GatewayOpDispatch GatewayOp = iota
	GatewayOpHeartbeat
	GatewayOpIdentify
	GatewayOpStatusUpdate
	GatewayOpVoiceStateUpdate
	_
	GatewayOpResume
	GatewayOpReconnect
	GatewayOpRequestGuildMembers
	GatewayOpInvalidSession
	GatewayOpHello
	GatewayOpHeartbeatACK
)

// GatewayIntent represents a bitflag for intents.
type GatewayIntent int64

const (
	IntentGuilds GatewayIntent = 1 << iota
	IntentGuildMembers
	IntentGuildBans
	IntentGuildEmojis
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
)

// Gateway close codes.
const (
	CloseUnknownError = 4000 + iota
	CloseUnknownOpCode
	CloseDecodeError
	CloseNotAuthenticated
	CloseAuthenticationFailed
	CloseAlreadyAuthenticated
	_
	CloseInvalidSeq
	CloseRateLimited
	CloseSessionTimeout
	CloseInvalidShard
	CloseShardingRequired
	CloseInvalidAPIVersion
	CloseInvalidIntents
	CloseDisallowedIntents
)

// GatewayPayload represents the base payload received from the gateway.
type GatewayPayload struct {
	Op       GatewayOp           `json:"op"`
	Data     jsoniter.RawMessage `json:"d"`
	Sequence *int64              `json:"s"`
	Type     *string             `json:"t"`
}

// EventType returns the dispatch event name, or "" for non-dispatch
// payloads.
func (gp *GatewayPayload) EventType() string {
	if gp.Type == nil {
		return ""
	}

	return *gp.Type
}

// SentPayload represents the base payload sent to the gateway.
type SentPayload struct {
	Op   GatewayOp   `json:"op"`
	Data interface{} `json:"d"`
}

// Hello is the first payload the gateway sends after connecting.
type Hello struct {
	HeartbeatInterval int32 `json:"heartbeat_interval"`
}

// Ready confirms a successful identify.
type Ready struct {
	Version   int32  `json:"v"`
	User      *User  `json:"user"`
	SessionID string `json:"session_id"`
}

// Identify represents the initial handshake with the gateway.
type Identify struct {
	Token      string             `json:"token"`
	Properties IdentifyProperties `json:"properties"`
	Compress   bool               `json:"compress"`
	Intents    GatewayIntent      `json:"intents"`
}

// IdentifyProperties are the extra properties sent in the identify packet.
type IdentifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// RequestGuildMembers requests members, optionally with presences, for
// a guild.
type RequestGuildMembers struct {
	GuildID   Snowflake   `json:"guild_id"`
	Limit     int32       `json:"limit"`
	Presences bool        `json:"presences"`
	UserIDs   []Snowflake `json:"user_ids,omitempty"`
	Nonce     string      `json:"nonce,omitempty"`
}

// GuildMembersChunk represents a guild members chunk event.
type GuildMembersChunk struct {
	GuildID    Snowflake      `json:"guild_id"`
	Members    []*GuildMember `json:"members"`
	ChunkIndex int32          `json:"chunk_index"`
	ChunkCount int32          `json:"chunk_count"`
	NotFound   []Snowflake    `json:"not_found,omitempty"`
	Presences  []Presence     `json:"presences,omitempty"`
	Nonce      string         `json:"nonce,omitempty"`
}
