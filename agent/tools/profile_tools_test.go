package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docpal/docpal/agent/profile"
)

func TestReadProfileEmpty(t *testing.T) {
	store := profile.NewStore(filepath.Join(t.TempDir(), "profile.json"))
	op := NewReadProfileOp(store)

	res := op.Execute(context.Background(), nil)
	if res.Failed {
		t.Fatalf("unexpected failure: %q", res.Output)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(res.Output), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty profile, got %v", got)
	}
}

func TestUpdateThenReadProfile(t *testing.T) {
	store := profile.NewStore(filepath.Join(t.TempDir(), "profile.json"))
	update := NewUpdateProfileOp(store)
	read := NewReadProfileOp(store)

	res := update.Execute(context.Background(), map[string]string{"key": "name", "value": "Ana"})
	if res.Failed {
		t.Fatalf("update failed: %q", res.Output)
	}
	if !strings.Contains(res.Output, "name") {
		t.Errorf("expected confirmation to name the key, got %q", res.Output)
	}

	out := read.Execute(context.Background(), nil)
	var got map[string]string
	if err := json.Unmarshal([]byte(out.Output), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["name"] != "Ana" {
		t.Errorf("expected name=Ana, got %v", got)
	}
}

func TestUpdateProfileFailure(t *testing.T) {
	// A store pointed at an unwritable path reports failure as error text.
	store := profile.NewStore(filepath.Join(t.TempDir(), "missing", "\x00bad", "profile.json"))
	op := NewUpdateProfileOp(store)

	res := op.Execute(context.Background(), map[string]string{"key": "name", "value": "Ana"})
	if !res.Failed {
		t.Fatal("expected failure for unwritable path")
	}
	if !strings.HasPrefix(res.Output, "Error updating user profile: ") {
		t.Errorf("expected the documented error prefix, got %q", res.Output)
	}
}
