package discord

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

// session.go implements the member/presence directory as a short-lived
// gateway session: dial, identify, request the single member with
// presences enabled, read the matching chunk, close. The connection is
// scoped to one lookup and released on every exit path.

const (
	defaultLookupTimeout = 10 * time.Second

	// Payloads can carry full member chunks, keep the read limit roomy.
	websocketReadLimit = 1 << 22

	lookupIntents = IntentGuilds | IntentGuildMembers | IntentGuildPresences
)

var gatewayURL = url.URL{
	Scheme:   "wss",
	Host:     "gateway.discord.gg",
	RawQuery: "v=10&encoding=json",
}

// MemberPresence is a member record together with the presence snapshot
// the platform reported for them, if any.
type MemberPresence struct {
	Member   *GuildMember
	Presence *Presence
}

// Directory looks up a guild member and their presence by user id.
// Implementations fail with ErrMemberNotFound when the user is not a
// member and with an APIError for other platform failures.
type Directory interface {
	LookupMember(ctx context.Context, userID Snowflake) (*MemberPresence, error)
}

// GatewayDirectory is a Directory that opens one gateway connection per
// lookup. Reconnecting per request keeps the process stateless between
// requests; a pooled session could implement Directory instead.
type GatewayDirectory struct {
	Logger zerolog.Logger

	Token   string
	GuildID Snowflake

	// GatewayURL overrides the production gateway, used in tests.
	GatewayURL string

	LookupTimeout time.Duration
}

func NewGatewayDirectory(logger zerolog.Logger, token string, guildID Snowflake) *GatewayDirectory {
	return &GatewayDirectory{
		Logger:        logger,
		Token:         token,
		GuildID:       guildID,
		GatewayURL:    gatewayURL.String(),
		LookupTimeout: defaultLookupTimeout,
	}
}

// LookupMember performs one scoped gateway session and returns the
// member with their presence.
func (d *GatewayDirectory) LookupMember(ctx context.Context, userID Snowflake) (*MemberPresence, error) {
	ctx, cancel := context.WithTimeout(ctx, d.LookupTimeout)
	defer cancel()

	session, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}

	defer session.close()

	return session.requestMember(ctx, d.GuildID, userID)
}

type gatewaySession struct {
	logger zerolog.Logger
	conn   *websocket.Conn
}

// connect dials the gateway and completes the hello/identify handshake.
func (d *GatewayDirectory) connect(ctx context.Context) (*gatewaySession, error) {
	d.Logger.Debug().Str("url", d.GatewayURL).Msg("Dialing gateway")

	conn, _, err := websocket.Dial(ctx, d.GatewayURL, nil)
	if err != nil {
		return nil, NewAPIError("dial", err)
	}

	conn.SetReadLimit(websocketReadLimit)

	session := &gatewaySession{
		logger: d.Logger,
		conn:   conn,
	}

	payload, err := session.read(ctx)
	if err != nil {
		session.close()

		return nil, err
	}

	var hello Hello

	err = json.Unmarshal(payload.Data, &hello)
	if err != nil {
		session.close()

		return nil, NewAPIError("hello", err)
	}

	if hello.HeartbeatInterval <= 0 {
		session.close()

		return nil, NewAPIError("hello", errors.New("invalid heartbeat interval"))
	}

	// A lookup finishes well inside one heartbeat interval, so no
	// background heartbeater runs; requested heartbeats are still
	// answered in the read loops.
	err = session.send(ctx, GatewayOpIdentify, Identify{
		Token: d.Token,
		Properties: IdentifyProperties{
			OS:      runtime.GOOS,
			Browser: "Placard",
			Device:  "Placard",
		},
		Compress: false,
		Intents:  lookupIntents,
	})
	if err != nil {
		session.close()

		return nil, err
	}

	err = session.waitForReady(ctx)
	if err != nil {
		session.close()

		return nil, err
	}

	return session, nil
}

// waitForReady consumes payloads until the READY dispatch arrives.
func (session *gatewaySession) waitForReady(ctx context.Context) error {
	for {
		payload, err := session.read(ctx)
		if err != nil {
			return err
		}

		switch payload.Op {
		case GatewayOpDispatch:
			if payload.EventType() == "READY" {
				return nil
			}
		case GatewayOpHeartbeat:
			if err := session.sendHeartbeat(ctx, payload.Sequence); err != nil {
				return err
			}
		case GatewayOpInvalidSession:
			return NewAPIError("identify", ErrInvalidSession)
		}
	}
}

// requestMember asks the gateway for one member with presences and
// waits for the matching chunk.
func (session *gatewaySession) requestMember(ctx context.Context, guildID Snowflake, userID Snowflake) (*MemberPresence, error) {
	nonce := randomHex(16)

	err := session.send(ctx, GatewayOpRequestGuildMembers, RequestGuildMembers{
		GuildID:   guildID,
		Limit:     1,
		Presences: true,
		UserIDs:   []Snowflake{userID},
		Nonce:     nonce,
	})
	if err != nil {
		return nil, err
	}

	for {
		payload, err := session.read(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, NewAPIError("chunk", ErrChunkTimeout)
			}

			return nil, err
		}

		switch payload.Op {
		case GatewayOpHeartbeat:
			if err := session.sendHeartbeat(ctx, payload.Sequence); err != nil {
				return nil, err
			}

			continue
		case GatewayOpInvalidSession:
			return nil, NewAPIError("chunk", ErrInvalidSession)
		case GatewayOpDispatch:
		default:
			continue
		}

		if payload.EventType() != "GUILD_MEMBERS_CHUNK" {
			continue
		}

		var chunk GuildMembersChunk

		err = json.Unmarshal(payload.Data, &chunk)
		if err != nil {
			return nil, NewAPIError("chunk", err)
		}

		if chunk.Nonce != "" && chunk.Nonce != nonce {
			continue
		}

		return memberFromChunk(&chunk, userID)
	}
}

// memberFromChunk picks the requested member and their presence out of
// a chunk, or resolves the lookup as a miss.
func memberFromChunk(chunk *GuildMembersChunk, userID Snowflake) (*MemberPresence, error) {
	for _, id := range chunk.NotFound {
		if id == userID {
			return nil, ErrMemberNotFound
		}
	}

	var member *GuildMember

	for _, m := range chunk.Members {
		if m.User != nil && m.User.ID == userID {
			member = m

			break
		}
	}

	if member == nil {
		return nil, ErrMemberNotFound
	}

	result := &MemberPresence{Member: member}

	for i := range chunk.Presences {
		if chunk.Presences[i].UserID() == userID {
			result.Presence = &chunk.Presences[i]

			break
		}
	}

	return result, nil
}

func (session *gatewaySession) sendHeartbeat(ctx context.Context, sequence *int64) error {
	var seq int64
	if sequence != nil {
		seq = *sequence
	}

	return session.send(ctx, GatewayOpHeartbeat, seq)
}

func (session *gatewaySession) send(ctx context.Context, gatewayOp GatewayOp, data interface{}) error {
	payload, err := json.Marshal(SentPayload{
		Op:   gatewayOp,
		Data: data,
	})
	if err != nil {
		return NewAPIError("send", err)
	}

	err = session.conn.Write(ctx, websocket.MessageText, payload)
	if err != nil {
		return NewAPIError("send", err)
	}

	return nil
}

func (session *gatewaySession) read(ctx context.Context) (*GatewayPayload, error) {
	_, data, err := session.conn.Read(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		var closeError websocket.CloseError
		if errors.As(err, &closeError) {
			return nil, NewAPIError("read", classifyCloseError(closeError))
		}

		return nil, NewAPIError("read", err)
	}

	var payload GatewayPayload

	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, NewAPIError("read", fmt.Errorf("failed to unmarshal payload: %w", err))
	}

	return &payload, nil
}

func classifyCloseError(closeError websocket.CloseError) error {
	switch int(closeError.Code) {
	case CloseNotAuthenticated, CloseAuthenticationFailed, CloseAlreadyAuthenticated:
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, closeError.Error())
	case CloseInvalidIntents, CloseDisallowedIntents:
		return fmt.Errorf("%w: %s", ErrDisallowedIntents, closeError.Error())
	default:
		return closeError
	}
}

func (session *gatewaySession) close() {
	err := session.conn.Close(websocket.StatusNormalClosure, "")
	if err != nil {
		session.logger.Debug().Err(err).Msg("Failed to close gateway connection")
	}
}

// randomHex returns a hex string of the given byte length, used for
// chunk nonces.
func randomHex(length int) string {
	buf := make([]byte, length)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}
