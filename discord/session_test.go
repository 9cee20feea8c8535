package discord

import (
	"errors"
	"testing"
)

func TestMemberFromChunk(t *testing.T) {
	chunk := &GuildMembersChunk{
		GuildID: "1",
		Members: []*GuildMember{
			{User: &User{ID: "42", Username: "somebody"}},
		},
		Presences: []Presence{
			{
				User:         &User{ID: "42"},
				Status:       PresenceStatusOnline,
				ClientStatus: ClientStatus{Desktop: PresenceStatusOnline},
			},
		},
	}

	result, err := memberFromChunk(chunk, "42")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if result.Member.User.Username != "somebody" {
		t.Errorf("Expected username %q, but got %q", "somebody", result.Member.User.Username)
	}

	if result.Presence == nil || result.Presence.Status != PresenceStatusOnline {
		t.Errorf("Expected online presence, but got %+v", result.Presence)
	}
}

func TestMemberFromChunkNoPresence(t *testing.T) {
	chunk := &GuildMembersChunk{
		Members: []*GuildMember{
			{User: &User{ID: "42"}},
		},
	}

	result, err := memberFromChunk(chunk, "42")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if result.Presence != nil {
		t.Errorf("Expected nil presence, but got %+v", result.Presence)
	}
}

func TestMemberFromChunkNotFound(t *testing.T) {
	chunk := &GuildMembersChunk{
		NotFound: []Snowflake{"42"},
	}

	_, err := memberFromChunk(chunk, "42")

	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, but got %v", err)
	}
}

func TestMemberFromChunkEmpty(t *testing.T) {
	_, err := memberFromChunk(&GuildMembersChunk{}, "42")

	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Expected ErrMemberNotFound, but got %v", err)
	}
}

func TestChunkUnmarshal(t *testing.T) {
	payload := []byte(`{
		"guild_id": "1",
		"members": [{"user": {"id": "42", "username": "somebody", "global_name": "Somebody"}}],
		"presences": [{
			"user": {"id": "42"},
			"status": "idle",
			"client_status": {"mobile": "idle"},
			"activities": [{"name": "Spotify", "type": 2, "details": "Song A", "assets": {"large_image": "spotify:abc"}}]
		}],
		"chunk_index": 0,
		"chunk_count": 1
	}`)

	var chunk GuildMembersChunk

	err := json.Unmarshal(payload, &chunk)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if len(chunk.Members) != 1 || chunk.Members[0].User.GlobalName != "Somebody" {
		t.Errorf("Expected one member with global name, but got %+v", chunk.Members)
	}

	if len(chunk.Presences) != 1 {
		t.Fatalf("Expected one presence, but got %d", len(chunk.Presences))
	}

	presence := chunk.Presences[0]

	if presence.ClientStatus.Mobile != PresenceStatusIdle {
		t.Errorf("Expected mobile idle, but got %+v", presence.ClientStatus)
	}

	if len(presence.Activities) != 1 || presence.Activities[0].Type != ActivityTypeListening {
		t.Errorf("Expected one listening activity, but got %+v", presence.Activities)
	}

	if presence.Activities[0].Assets.LargeImage != "spotify:abc" {
		t.Errorf("Expected spotify asset key, but got %+v", presence.Activities[0].Assets)
	}
}

func TestClassifyCloseErrors(t *testing.T) {
	if !IsAPIError(NewAPIError("read", ErrInvalidSession)) {
		t.Errorf("Expected APIError classification")
	}

	if IsAPIError(errors.New("plain failure")) {
		t.Errorf("Expected plain error to not classify as APIError")
	}

	if !errors.Is(NewAPIError("chunk", ErrChunkTimeout), ErrChunkTimeout) {
		t.Errorf("Expected APIError to unwrap to its cause")
	}
}
