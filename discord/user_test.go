package discord

import "testing"

func TestDisplayName(t *testing.T) {
	user := &User{Username: "old_name", GlobalName: "New Name"}

	if name := user.DisplayName(); name != "New Name" {
		t.Errorf("Expected %q, but got %q", "New Name", name)
	}

	user.GlobalName = ""

	if name := user.DisplayName(); name != "old_name" {
		t.Errorf("Expected %q, but got %q", "old_name", name)
	}
}

func TestAvatarURL(t *testing.T) {
	user := &User{ID: "123456789012345678", Avatar: "a1b2c3"}

	result := user.AvatarURL()
	expected := "https://cdn.discordapp.com/avatars/123456789012345678/a1b2c3.png?size=128"

	if result != expected {
		t.Errorf("Expected %q, but got %q", expected, result)
	}
}

func TestAvatarURLDefaultAvatar(t *testing.T) {
	user := &User{ID: "123456789012345678", Discriminator: "0"}

	result := user.AvatarURL()
	expected := "https://cdn.discordapp.com/embed/avatars/0.png"

	if result != expected {
		t.Errorf("Expected %q, but got %q", expected, result)
	}
}

func TestAvatarURLLegacyDiscriminator(t *testing.T) {
	user := &User{ID: "123456789012345678", Discriminator: "1337"}

	result := user.AvatarURL()
	expected := "https://cdn.discordapp.com/embed/avatars/2.png"

	if result != expected {
		t.Errorf("Expected %q, but got %q", expected, result)
	}
}
