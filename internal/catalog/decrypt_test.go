package catalog

import (
	"testing"

	"github.com/tessro/tapedeck/internal/core"
)

// Tokens produced with: openssl enc -des-ecb -K 3338333436353931 -nosalt -base64
const (
	token96  = "ID2ieOjCrwfgWvL5sXl4B1ImC5QfbsDymms/uRt0znEuJhbMLAx4uW+XHLUinhCK"
	token160 = "ID2ieOjCrwfgWvL5sXl4B1ImC5QfbsDymms/uRt0znFnPOAyJlTDG4PzFaL/aK97"
)

func TestDecryptMediaURL(t *testing.T) {
	got, err := DecryptMediaURL(token96)
	if err != nil {
		t.Fatalf("DecryptMediaURL: %v", err)
	}
	if want := "https://aac.saavncdn.com/815/abc123_96.mp4"; got != want {
		t.Errorf("DecryptMediaURL() = %q, want %q", got, want)
	}
}

func TestResolveStreamURL(t *testing.T) {
	want := "https://aac.saavncdn.com/815/abc123_320.mp4"

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "96 kbps", token: token96, want: want},
		{name: "160 kbps", token: token160, want: want},
		{name: "empty", token: "", want: ""},
		{name: "not base64", token: "%%%", want: ""},
		{name: "wrong length", token: "AAAA", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := core.Song{ID: "x", EncryptedMediaURL: tt.token}
			for i := 0; i < 3; i++ {
				if got := ResolveStreamURL(song); got != tt.want {
					t.Fatalf("call %d: ResolveStreamURL() = %q, want %q", i, got, tt.want)
				}
			}
		})
	}
}

func TestHighestBitrate(t *testing.T) {
	tests := map[string]string{
		"https://cdn/x_12.mp4":  "https://cdn/x_320.mp4",
		"https://cdn/x_48.mp4":  "https://cdn/x_320.mp4",
		"https://cdn/x_320.mp4": "https://cdn/x_320.mp4",
		"https://cdn/x_64.mp4":  "https://cdn/x_64.mp4",
	}
	for in, want := range tests {
		if got := HighestBitrate(in); got != want {
			t.Errorf("HighestBitrate(%q) = %q, want %q", in, got, want)
		}
	}
}
