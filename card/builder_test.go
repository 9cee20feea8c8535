package card

import (
	"strings"
	"testing"
)

func TestBuildCardState(t *testing.T) {
	avatar := SomeImage("data:image/png;base64,AAAA")

	resolution := Resolution{
		Status:   "online",
		GameType: "Playing",
		Game:     "Chess",
		Details:  "Rated match",
		State:    "Move 14",
		Height:   HeightTall,
	}

	state := BuildCardState("somebody", avatar, resolution)

	if state.Username != "somebody" {
		t.Errorf("Expected username %q, but got %q", "somebody", state.Username)
	}

	if !state.PfpImage.Present() {
		t.Errorf("Expected present avatar, but got absent")
	}

	if state.Height != HeightTall {
		t.Errorf("Expected height %d, but got %d", HeightTall, state.Height)
	}
}

func TestBuildCardStateSanitizesUsername(t *testing.T) {
	state := BuildCardState("<script>"+strings.Repeat("a", 40), NoImage(), Resolution{Height: HeightShort})

	if strings.Contains(state.Username, "<") {
		t.Errorf("Expected escaped username, but got %q", state.Username)
	}

	if !strings.Contains(state.Username, "...") {
		t.Errorf("Expected truncated username, but got %q", state.Username)
	}
}

func TestBuildCardStateHeightPostCondition(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic, but got none")
		}
	}()

	BuildCardState("somebody", NoImage(), Resolution{
		Details: "has details",
		Height:  HeightShort,
	})
}
