package placard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/PlacardTeam/Placard-Daemon/card"
	"github.com/PlacardTeam/Placard-Daemon/discord"
)

type fakeDirectory struct {
	result *discord.MemberPresence
	err    error
}

func (d *fakeDirectory) LookupMember(_ context.Context, _ discord.Snowflake) (*discord.MemberPresence, error) {
	return d.result, d.err
}

// notFoundTransport answers every request with a 404 so avatar fetches
// degrade to absent without touching the network.
type notFoundTransport struct{}

func (notFoundTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       http.NoBody,
		Request:    req,
	}

	return rec, nil
}

func testPlacard(directory discord.Directory, games ...string) *Placard {
	images := card.NewImageResolver(zerolog.Nop(), time.Second)
	images.HTTP.Transport = notFoundTransport{}

	return &Placard{
		Logger:        zerolog.Nop(),
		Directory:     directory,
		Images:        images,
		CardsInflight: atomic.NewInt32(0),
		Resolver: &card.Resolver{
			Images:    images,
			Allowlist: card.NewAllowlist(games),
		},
	}
}

func TestBuildCardListeningScenario(t *testing.T) {
	directory := &fakeDirectory{
		result: &discord.MemberPresence{
			Member: &discord.GuildMember{
				User: &discord.User{ID: "42", Username: "somebody"},
			},
			Presence: &discord.Presence{
				ClientStatus: discord.ClientStatus{Desktop: discord.PresenceStatusOnline},
				Activities: []discord.Activity{
					{Name: "Spotify", Type: discord.ActivityTypeListening, Details: "Song A"},
				},
			},
		},
	}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	if state.Status != "online" {
		t.Errorf("Expected status %q, but got %q", "online", state.Status)
	}

	if state.GameType != "Listening to" {
		t.Errorf("Expected game type %q, but got %q", "Listening to", state.GameType)
	}

	if state.Game != "Spotify" {
		t.Errorf("Expected game %q, but got %q", "Spotify", state.Game)
	}

	if state.Details != "Song A" {
		t.Errorf("Expected details %q, but got %q", "Song A", state.Details)
	}

	if state.Height != card.HeightTall {
		t.Errorf("Expected height %d, but got %d", card.HeightTall, state.Height)
	}

	// The avatar fetch hit the stub 404; the card must still build.
	if state.PfpImage.Present() {
		t.Errorf("Expected absent avatar, but got %q", state.PfpImage.DataURI())
	}
}

func TestBuildCardMemberNotFound(t *testing.T) {
	directory := &fakeDirectory{err: discord.ErrMemberNotFound}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	expected := card.FallbackCard(card.FailureNotInGuild)

	if state.Details != expected.Details || state.State != expected.State {
		t.Errorf("Expected %+v, but got %+v", expected, state)
	}

	if state.Details != "You don't seem to be in the server." {
		t.Errorf("Expected canned copy, but got %q", state.Details)
	}
}

func TestBuildCardAPIError(t *testing.T) {
	directory := &fakeDirectory{err: discord.NewAPIError("chunk", discord.ErrChunkTimeout)}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	if state.Details != "Sorry, an error occured!" {
		t.Errorf("Expected canned API error copy, but got %q", state.Details)
	}
}

func TestBuildCardUnexpectedError(t *testing.T) {
	directory := &fakeDirectory{err: errors.New("boom")}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	if state.Details != "Sorry, an unexpected error occured!" {
		t.Errorf("Expected canned unexpected copy, but got %q", state.Details)
	}
}

func TestBuildCardRecoversPanic(t *testing.T) {
	// A lookup that reports success with no member is a programming
	// fault; the pipeline must degrade to the unexpected-error card.
	directory := &fakeDirectory{
		result: &discord.MemberPresence{},
	}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	if state.Details != "Sorry, an unexpected error occured!" {
		t.Errorf("Expected canned unexpected copy, but got %q", state.Details)
	}
}

func TestBuildCardOffline(t *testing.T) {
	directory := &fakeDirectory{
		result: &discord.MemberPresence{
			Member: &discord.GuildMember{
				User: &discord.User{ID: "42", Username: "somebody"},
			},
		},
	}

	state := testPlacard(directory).BuildCard(context.Background(), "42")

	if state.Status != "offline" {
		t.Errorf("Expected status %q, but got %q", "offline", state.Status)
	}

	if state.Height != card.HeightShort {
		t.Errorf("Expected height %d, but got %d", card.HeightShort, state.Height)
	}

	if state.Game != "" || state.GameType != "" {
		t.Errorf("Expected no activity, but got %q %q", state.GameType, state.Game)
	}
}
