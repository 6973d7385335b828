package gallery

// Photo is one gallery row. URL holds a remote URL or a data URI; Date is
// kept as the client sent it.
type Photo struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Date    string `json:"date"`
}

func (p Photo) EntityID() string { return p.ID }

// DeleteRequest is the body of DELETE /api/gallery.
type DeleteRequest struct {
	ID string `json:"id"`
}

type PhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Date    string `json:"date"`
}

// PhotoPatch is the body of PATCH /api/gallery/photos/{id}; nil fields are kept.
type PhotoPatch struct {
	URL     *string `json:"url,omitempty"`
	Caption *string `json:"caption,omitempty"`
	Date    *string `json:"date,omitempty"`
}
