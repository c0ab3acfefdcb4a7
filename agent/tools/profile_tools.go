package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docpal/docpal/agent/profile"
)

// ReadProfileOp returns the stored user profile as JSON.
type ReadProfileOp struct {
	store *profile.Store
}

// NewReadProfileOp creates the read_user_profile operation.
func NewReadProfileOp(store *profile.Store) *ReadProfileOp {
	return &ReadProfileOp{store: store}
}

func (o *ReadProfileOp) Name() string {
	return "read_user_profile"
}

func (o *ReadProfileOp) Description() string {
	return "Reads and returns the stored user profile data. " +
		"Returns an empty object if nothing has been saved yet."
}

func (o *ReadProfileOp) Params() []Param {
	return nil
}

func (o *ReadProfileOp) Execute(_ context.Context, _ map[string]string) *Result {
	data, err := json.MarshalIndent(o.store.Read(), "", "    ")
	if err != nil {
		return &Result{
			Output: fmt.Sprintf("Error reading user profile: %v", err),
			Failed: true,
		}
	}
	return &Result{Output: string(data)}
}

// UpdateProfileOp saves a single key-value pair to the user profile.
type UpdateProfileOp struct {
	store *profile.Store
}

// NewUpdateProfileOp creates the update_user_profile operation.
func NewUpdateProfileOp(store *profile.Store) *UpdateProfileOp {
	return &UpdateProfileOp{store: store}
}

func (o *UpdateProfileOp) Name() string {
	return "update_user_profile"
}

func (o *UpdateProfileOp) Description() string {
	return "Updates a specific key-value pair in the user profile and persists it. " +
		"Use this when the user shares personal information such as their name."
}

func (o *UpdateProfileOp) Params() []Param {
	return []Param{
		{Name: "key", Type: "string", Description: "Profile key to set, e.g. \"name\""},
		{Name: "value", Type: "string", Description: "Value to store for the key"},
	}
}

func (o *UpdateProfileOp) Execute(_ context.Context, args map[string]string) *Result {
	key, value := args["key"], args["value"]
	if err := o.store.Set(key, value); err != nil {
		return &Result{
			Output: fmt.Sprintf("Error updating user profile: %v", err),
			Failed: true,
		}
	}
	return &Result{Output: fmt.Sprintf("Saved %s to user profile.", key)}
}
