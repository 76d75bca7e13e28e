package misc

import "testing"

func TestIdentity(t *testing.T) {
	if GetAppName() != "vindur" {
		t.Errorf("GetAppName() = %q, want vindur", GetAppName())
	}
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
	if GetGitHash() == "" {
		t.Error("GetGitHash() returned empty string")
	}
}

func TestGitHashOverride(t *testing.T) {
	saved := gitHash
	t.Cleanup(func() { gitHash = saved })

	gitHash = "abc123"
	if got := GetGitHash(); got != "abc123" {
		t.Errorf("GetGitHash() = %q, want abc123", got)
	}
}
