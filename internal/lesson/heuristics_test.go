package lesson

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		text     string
		want     string
	}{
		{"extension stripped", "Intro.docx", "", "Intro"},
		{"no extension", "Intro", "", "Intro"},
		{"all caps line wins", "file.txt", "MY GREAT LESSON\nsome body text", "MY GREAT LESSON"},
		{"capitalized short line wins", "file.txt", "Getting Started\nlong body follows here", "Getting Started"},
		{"lowercase line ignored", "file.txt", "this line is not a title in any way shape or form at all\nmore", "file"},
		{"long line ignored", "file.txt", strings.Repeat("A", 120) + "\nbody", "file"},
		{"blank lines skipped", "file.txt", "\n\n\nTHE TITLE\nbody", "THE TITLE"},
		{"scan stops after five lines", "file.txt", "a b c d e f g h i j k l\nb b c d e f g h i j k l\nc b c d e f g h i j k l\nd b c d e f g h i j k l\ne b c d e f g h i j k l\nTITLE", "file"},
		{"hidden dot file keeps name", ".env", "", ".env"},
	}

	for _, tc := range cases {
		got := DeriveTitle(tc.fileName, tc.text)
		if got != tc.want {
			t.Errorf("%s: DeriveTitle(%q, …) = %q, want %q", tc.name, tc.fileName, got, tc.want)
		}
	}
}

func TestDeriveTitleNeverEmpty(t *testing.T) {
	if got := DeriveTitle("Lesson 1.txt", "Welcome\n\nbody"); got == "" {
		t.Fatal("DeriveTitle returned empty title")
	}
}

func TestDeriveDescriptionMetadataWins(t *testing.T) {
	got := DeriveDescription("first paragraph here", "explicit meta description", "file.txt")
	if got != "explicit meta description" {
		t.Errorf("DeriveDescription = %q, want metadata pass-through", got)
	}
}

func TestDeriveDescriptionFirstParagraph(t *testing.T) {
	got := DeriveDescription("This is the first lesson.\n\nSecond paragraph.", "", "file.txt")
	if got != "This is the first lesson." {
		t.Errorf("DeriveDescription = %q, want first paragraph", got)
	}
}

func TestDeriveDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := DeriveDescription(long, "", "file.txt")

	if !strings.HasSuffix(got, "...") {
		t.Errorf("long description should end with ellipsis, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 203 {
		t.Errorf("description length = %d runes, want <= 203", n)
	}
}

func TestDeriveDescriptionFallback(t *testing.T) {
	got := DeriveDescription("", "", "Lesson 1.txt")
	if got != "Lesson from Lesson 1.txt" {
		t.Errorf("DeriveDescription fallback = %q", got)
	}

	got = DeriveDescription("   ", "", "")
	if got != "Lesson from Google Drive" {
		t.Errorf("DeriveDescription empty fallback = %q", got)
	}
}
