package core

import "testing"

func TestMixCurrent(t *testing.T) {
	songs := []Song{{ID: "a"}, {ID: "b"}}
	tests := []struct {
		name  string
		mix   *Mix
		index int
		want  string
	}{
		{"nil mix", nil, 0, ""},
		{"empty", &Mix{}, 0, ""},
		{"first", &Mix{Songs: songs}, 0, "a"},
		{"second", &Mix{Songs: songs}, 1, "b"},
		{"past end", &Mix{Songs: songs}, 2, ""},
		{"negative", &Mix{Songs: songs}, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mix != nil {
				tt.mix.CurrentSongIndex = tt.index
			}
			got := tt.mix.Current()
			if tt.want == "" {
				if got != nil {
					t.Errorf("Current() = %q, want nil", got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Errorf("Current() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestIsOnTheGoTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"On-the-Go", true},
		{"on-the-go", true},
		{"  ON-THE-GO ", true},
		{"On the Go", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsOnTheGoTitle(tt.title); got != tt.want {
			t.Errorf("IsOnTheGoTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestMixClone(t *testing.T) {
	m := Mix{ID: "1", Songs: []Song{{ID: "a"}}}
	c := m.Clone()
	c.Songs[0].ID = "z"
	if m.Songs[0].ID != "a" {
		t.Errorf("Clone() aliases songs: original now %q", m.Songs[0].ID)
	}
}

func TestSongHelpers(t *testing.T) {
	s := Song{
		PrimaryArtists: "A. R. Rahman, , Shreya Ghoshal ",
		Year:           "2019",
		Image: []Image{
			{Quality: "50x50", Link: "small"},
			{Quality: "150x150", Link: "mid"},
		},
	}

	artists := s.Artists()
	if len(artists) != 2 || artists[0] != "A. R. Rahman" || artists[1] != "Shreya Ghoshal" {
		t.Errorf("Artists() = %v", artists)
	}
	if got := s.Thumbnail(); got != "mid" {
		t.Errorf("Thumbnail() = %q, want %q", got, "mid")
	}
	if got := s.YearInt(); got != 2019 {
		t.Errorf("YearInt() = %d, want 2019", got)
	}
	if got := (Song{Year: "n/a"}).YearInt(); got != 0 {
		t.Errorf("YearInt() on malformed = %d, want 0", got)
	}
}

func TestThemeNext(t *testing.T) {
	if got := ThemeDark.Next(); got != ThemeClassic {
		t.Errorf("ThemeDark.Next() = %q, want %q", got, ThemeClassic)
	}
	if got := Theme("bogus").Next(); got != ThemeClassic {
		t.Errorf("unknown.Next() = %q, want %q", got, ThemeClassic)
	}
}
