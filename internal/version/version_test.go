package version

import "testing"

func TestSetAndCurrent(t *testing.T) {
	defer Set(Info{Version: "dev"})

	Set(Info{Version: "1.2.3", Commit: "abc123", BuildTime: "2026-08-30"})
	got := Current()
	if got.Version != "1.2.3" || got.Commit != "abc123" || got.BuildTime != "2026-08-30" {
		t.Fatalf("unexpected info %+v", got)
	}

	Set(Info{})
	if Current().Version != "dev" {
		t.Fatalf("empty version should default to dev, got %q", Current().Version)
	}
}
