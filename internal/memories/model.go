package memories

import "github.com/taiwoajasa245/memories-api/pkg/date"

type Memory struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        date.Date `json:"date"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

func (m Memory) EntityID() string { return m.ID }

type MemoryRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        date.Date `json:"date"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// MemoryPatch is the body of PATCH /api/memories/{id}; nil fields are kept.
type MemoryPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *date.Date `json:"date,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
}
