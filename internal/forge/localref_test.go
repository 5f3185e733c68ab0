package forge

import "testing"

func TestSplitRemoteURL(t *testing.T) {
	cases := []struct {
		raw      string
		ns, coll string
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets", "acme", "widgets"},
		{"git@github.com:acme/widgets.git", "acme", "widgets"},
		{"git@gitlab.example.com:group/sub/widgets.git", "sub", "widgets"},
		{"ssh://git@github.com/acme/widgets.git", "acme", "widgets"},
	}
	for _, tc := range cases {
		ns, coll, err := SplitRemoteURL(tc.raw)
		if err != nil {
			t.Fatalf("SplitRemoteURL(%q): %v", tc.raw, err)
		}
		if ns != tc.ns || coll != tc.coll {
			t.Fatalf("SplitRemoteURL(%q) = %q/%q, want %q/%q", tc.raw, ns, coll, tc.ns, tc.coll)
		}
	}
}

func TestSplitRemoteURLRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "widgets", "https://github.com"} {
		if _, _, err := SplitRemoteURL(raw); err == nil {
			t.Fatalf("SplitRemoteURL(%q): expected error", raw)
		}
	}
}

func TestDetectProvider(t *testing.T) {
	cases := map[string]string{
		"https://github.com/a/b/pull/1":              "github",
		"https://gitlab.com/a/b/-/merge_requests/1":  "gitlab",
		"https://gitlab.corp.example/a/b":            "gitlab",
		"https://github.corp.example/a/b/pull/2":     "github",
		"a/b#3":                                      "",
	}
	for input, want := range cases {
		if got := DetectProvider(input); got != want {
			t.Fatalf("DetectProvider(%q) = %q, want %q", input, got, want)
		}
	}
}
