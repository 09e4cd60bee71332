package cli

import "fmt"

// DeleteResult reports a removed entity
type DeleteResult struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Deleted bool   `json:"deleted"`
}

// GetID implements the GetID interface for quiet mode output
func (r *DeleteResult) GetID() string { return r.ID }

// Human implements Humanizer
func (r *DeleteResult) Human() string {
	if !r.Deleted {
		return "Cancelled"
	}
	return fmt.Sprintf("✓ %s %s deleted", r.Kind, r.ID)
}

// UpdateResult reports a change to an existing entity
type UpdateResult struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// GetID implements the GetID interface for quiet mode output
func (r *UpdateResult) GetID() string { return r.ID }

// Human implements Humanizer
func (r *UpdateResult) Human() string {
	return fmt.Sprintf("✓ %s %s %s", r.Kind, r.ID, r.Message)
}
