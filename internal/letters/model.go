package letters

import "github.com/taiwoajasa245/memories-api/pkg/date"

// Letter stays sealed until RevealDate, unless written with
// RevealImmediately. Once revealed it never seals again.
type Letter struct {
	ID                string     `json:"id"`
	From              string     `json:"from"`
	To                string     `json:"to"`
	Message           string     `json:"message"`
	DateWritten       date.Date  `json:"dateWritten"`
	RevealDate        *date.Date `json:"revealDate,omitempty"`
	Revealed          bool       `json:"revealed"`
	RevealImmediately bool       `json:"revealImmediately"`
}

func (l Letter) EntityID() string { return l.ID }

// LetterRequest is the body of POST /api/letters. DateWritten defaults to
// today and RevealImmediately to true.
type LetterRequest struct {
	From              string     `json:"from"`
	To                string     `json:"to"`
	Message           string     `json:"message"`
	DateWritten       *date.Date `json:"dateWritten,omitempty"`
	RevealDate        *date.Date `json:"revealDate,omitempty"`
	RevealImmediately *bool      `json:"revealImmediately,omitempty"`
}

// LetterPatch is the body of PATCH /api/letters/{id}; nil fields are kept.
type LetterPatch struct {
	From              *string    `json:"from,omitempty"`
	To                *string    `json:"to,omitempty"`
	Message           *string    `json:"message,omitempty"`
	DateWritten       *date.Date `json:"dateWritten,omitempty"`
	RevealDate        *date.Date `json:"revealDate,omitempty"`
	RevealImmediately *bool      `json:"revealImmediately,omitempty"`
}

// Board is the letters page: opened letters newest first, sealed ones in
// the order they will open.
type Board struct {
	Revealed []Letter `json:"revealed"`
	Sealed   []Letter `json:"sealed"`
}
