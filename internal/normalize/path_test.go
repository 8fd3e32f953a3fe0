package normalize

import "testing"

func TestNormalize(t *testing.T) {
	n := Unix()
	cases := map[string]string{
		"a/b/../c":           "a/c",
		"../..":              "/",
		"":                   "/",
		"/":                  "/",
		`a\b/c`:              "a/b/c",
		"/music/a.mp3/..":    "/music",
		"/music/..":          "/",
		"//music///videos/":  "/music/videos",
		`C:\Videos\..\Music`: "C:/Music",
		"/../a":              "a",
		"a/../../b":          "b",
	}

	for input, expected := range cases {
		if got := n.Normalize(input); got != expected {
			t.Fatalf("Normalize(%q) expected %q, got %q", input, expected, got)
		}
	}
}

func TestNormalizeWindowsRoot(t *testing.T) {
	n := New(WindowsRoot)
	if got := n.Normalize(`C:\..`); got != "" {
		t.Fatalf("expected empty root, got %q", got)
	}
	if got := n.Normalize(`C:\Music\`); got != "C:/Music" {
		t.Fatalf("expected C:/Music, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "/", "..", "../..", "/a/b/../c", `x\\y//z\..`, "/..//a/./b/", "file:///a/b", "...", "a/..b/..",
	}
	for _, root := range []string{DefaultRoot, WindowsRoot} {
		n := New(root)
		for _, input := range inputs {
			once := n.Normalize(input)
			if twice := n.Normalize(once); twice != once {
				t.Fatalf("root %q: Normalize not idempotent for %q: %q then %q", root, input, once, twice)
			}
		}
	}
}

func TestNormalizeParent(t *testing.T) {
	n := Unix()
	if got := n.NormalizeParent("/music/a.mp3"); got != "/music" {
		t.Fatalf("expected /music, got %q", got)
	}
	if got := n.NormalizeParent("a.mp3"); got != "/" {
		t.Fatalf("expected root for top-level relative file, got %q", got)
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"file:///a/b/c.mp4": "c.mp4",
		"noslash":           "noslash",
		"/music/a.mp3":      "a.mp3",
		`C:\Videos\b.avi`:   "b.avi",
		`a/b\c`:             "c",
		"file:///top.mkv":   "top.mkv",
		"/music/":           "",
	}

	for input, expected := range cases {
		if got := BaseName(input); got != expected {
			t.Fatalf("BaseName(%q) expected %q, got %q", input, expected, got)
		}
	}
}
