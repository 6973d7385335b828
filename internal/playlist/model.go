package playlist

type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link,omitempty"`
	Note   string `json:"note,omitempty"`
}

func (s Song) EntityID() string { return s.ID }

type SongRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link,omitempty"`
	Note   string `json:"note,omitempty"`
}

// SongPatch is the body of PATCH /api/playlist/{id}; nil fields are kept.
type SongPatch struct {
	Title  *string `json:"title,omitempty"`
	Artist *string `json:"artist,omitempty"`
	Link   *string `json:"link,omitempty"`
	Note   *string `json:"note,omitempty"`
}
