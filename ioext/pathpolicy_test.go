package ioext

import "testing"

func TestResolveAssetPath(t *testing.T) {
	cases := []struct {
		mapDir, asset, want string
	}{
		{"maps", "tiles/ground.png", "maps/tiles/ground.png"},
		{"maps/level1", "../shared/tiles.png", "maps/shared/tiles.png"},
		{"maps", "/abs/tiles.png", "/abs/tiles.png"},
		{"maps\\win", "tiles\\ground.png", "maps/win/tiles/ground.png"},
	}
	for _, c := range cases {
		got := ResolveAssetPath(c.mapDir, c.asset)
		if got != c.want {
			t.Errorf("ResolveAssetPath(%q, %q) = %q, want %q", c.mapDir, c.asset, got, c.want)
		}
	}
}

func TestRelativeAssetPath(t *testing.T) {
	got := RelativeAssetPath("maps", "maps/tiles/ground.png")
	if got != "tiles/ground.png" {
		t.Errorf("RelativeAssetPath = %q, want %q", got, "tiles/ground.png")
	}
}

func TestAssetPathRoundTrip(t *testing.T) {
	mapDir := "maps/level1"
	original := "tiles/ground.png"

	resolved := ResolveAssetPath(mapDir, original)
	relative := RelativeAssetPath(mapDir, resolved)

	if relative != original {
		t.Errorf("round trip: got %q, want %q", relative, original)
	}
}
