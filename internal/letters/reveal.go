package letters

import (
	"sort"

	"github.com/taiwoajasa245/memories-api/internal/collection"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

// Due reports whether a sealed letter's reveal date has arrived.
func (l Letter) Due(today date.Date) bool {
	return !l.Revealed && hasDate(l.RevealDate) && l.RevealDate.OnOrBefore(today)
}

// RevealDue reveals every due letter. The second result holds the letters
// that changed, in collection order.
func RevealDue(letters []Letter, today date.Date) ([]Letter, []Letter) {
	out := collection.Clone(letters)
	var opened []Letter
	for i := range out {
		if out[i].Due(today) {
			out[i].Revealed = true
			opened = append(opened, out[i])
		}
	}
	return out, opened
}

// RevealNow opens the letter with the given id whatever its reveal date.
func RevealNow(letters []Letter, id string) []Letter {
	return collection.Update(letters, id, func(l Letter) Letter {
		l.Revealed = true
		return l
	})
}

// Arrange splits letters into a Board.
func Arrange(letters []Letter) Board {
	b := Board{Revealed: []Letter{}, Sealed: []Letter{}}
	for _, l := range letters {
		if l.Revealed {
			b.Revealed = append(b.Revealed, l)
		} else {
			b.Sealed = append(b.Sealed, l)
		}
	}

	sort.SliceStable(b.Revealed, func(i, j int) bool {
		return b.Revealed[i].DateWritten.After(b.Revealed[j].DateWritten.Time)
	})
	// letters without a date go last
	sort.SliceStable(b.Sealed, func(i, j int) bool {
		a, c := b.Sealed[i].RevealDate, b.Sealed[j].RevealDate
		if !hasDate(a) || !hasDate(c) {
			return hasDate(a) && !hasDate(c)
		}
		return a.Before(c.Time)
	})
	return b
}

func hasDate(d *date.Date) bool {
	return d != nil && !d.IsZero()
}
