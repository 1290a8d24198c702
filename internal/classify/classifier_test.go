package classify

import "testing"

func TestHeuristicIsVideo(t *testing.T) {
	c := NewHeuristic()

	tests := []struct {
		name  string
		class string
		title string
		want  bool
	}{
		{"VLC By Class", "VLC DirectX video output", "", true},
		{"MPC By Class", "MediaPlayerClassicW", "movie.mkv", true},
		{"Chrome Always Matches", "Chrome_WidgetWin_1", "Gmail", true},
		{"Firefox Always Matches", "MozillaWindowClass", "Search results", true},
		{"UWP App", "Windows.UI.Core.CoreWindow", "Films & TV", true},
		{"YouTube Title", "SomeOtherClass", "Cat compilation - YouTube", true},
		{"Netflix Title Case Insensitive", "SomeOtherClass", "NETFLIX - Home", true},
		{"Player Keyword", "SomeOtherClass", "Media Player 3000", true},
		{"Plain Editor", "Notepad", "notes.txt - Notepad", false},
		{"Terminal", "ConsoleWindowClass", "cmd.exe", false},
		{"Empty Everything", "", "", false},
		{"Class Substring Match", "prefix VLC DirectX video output suffix", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsVideo(0, tt.class, tt.title); got != tt.want {
				t.Errorf("IsVideo(%q, %q) = %v, want %v", tt.class, tt.title, got, tt.want)
			}
		})
	}
}

func TestHeuristicCustomTables(t *testing.T) {
	c := NewHeuristicWithTables([]string{"MyPlayerClass"}, []string{"cinema"})

	if !c.IsVideo(0, "MyPlayerClass", "") {
		t.Error("custom class table not honored")
	}
	if !c.IsVideo(0, "", "Home Cinema") {
		t.Error("custom keyword table not honored")
	}
	if c.IsVideo(0, "Chrome_WidgetWin_1", "YouTube") {
		t.Error("defaults should not apply with custom tables")
	}
}
