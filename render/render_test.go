package render

import (
	"strings"
	"testing"

	"github.com/PlacardTeam/Placard-Daemon/card"
)

func TestRenderTallCard(t *testing.T) {
	state := card.CardState{
		Username:     "somebody",
		PfpImage:     card.SomeImage("data:image/png;base64,AAAA"),
		Status:       "online",
		GameType:     "Listening to",
		Game:         "Spotify",
		Details:      "Song A",
		DetailsImage: card.SomeImage("data:image/png;base64,BBBB"),
		State:        "Artist B",
		Height:       card.HeightTall,
	}

	body, err := Render(state)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	svg := string(body)

	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("Expected svg document, but got %q", svg[:20])
	}

	for _, want := range []string{
		`height="187"`,
		"somebody",
		"Listening to",
		"Spotify",
		"Song A",
		"Artist B",
		"data:image/png;base64,BBBB",
		"#43b581",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("Expected rendered card to contain %q", want)
		}
	}
}

func TestRenderShortCard(t *testing.T) {
	state := card.CardState{
		Username: "somebody",
		Status:   "offline",
		Height:   card.HeightShort,
	}

	body, err := Render(state)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	svg := string(body)

	if !strings.Contains(svg, `height="97"`) {
		t.Errorf("Expected short card, but got %q", svg)
	}

	if strings.Contains(svg, "Playing") {
		t.Errorf("Expected no activity row on short card")
	}

	if !strings.Contains(svg, "#747f8d") {
		t.Errorf("Expected offline status color")
	}
}

func TestRenderFallbackCard(t *testing.T) {
	body, err := Render(card.FallbackCard(card.FailureNotInGuild))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	svg := string(body)

	if !strings.Contains(svg, "You don't seem to be in the server.") {
		t.Errorf("Expected canned copy in rendered card")
	}
}
