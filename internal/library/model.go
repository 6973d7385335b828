package library

type LibraryItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (i LibraryItem) EntityID() string { return i.ID }

func (i LibraryItem) Toggled() LibraryItem {
	i.Completed = !i.Completed
	return i
}

type LibraryData struct {
	Books  []LibraryItem `json:"books"`
	Movies []LibraryItem `json:"movies"`
}

type Shelf string

const (
	Books  Shelf = "books"
	Movies Shelf = "movies"
)

func (s Shelf) Valid() bool {
	return s == Books || s == Movies
}

func (d LibraryData) Items(shelf Shelf) []LibraryItem {
	if shelf == Movies {
		return d.Movies
	}
	return d.Books
}

func (d LibraryData) With(shelf Shelf, items []LibraryItem) LibraryData {
	if shelf == Movies {
		d.Movies = items
	} else {
		d.Books = items
	}
	return d
}

type ItemRequest struct {
	Title string `json:"title"`
}
