package models

// Label is a board-scoped tag. Cards carry a copy of the label taken at
// attach time, so edits must be swept onto every card holding the id.
type Label struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"` // Hex color code (e.g., "#7D56F4")
}

// GetID returns the label id
func (l *Label) GetID() string { return l.ID }

// ChecklistItem is owned by exactly one card
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
