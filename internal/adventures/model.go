package adventures

type ListItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (i ListItem) EntityID() string { return i.ID }

func (i ListItem) Toggled() ListItem {
	i.Completed = !i.Completed
	return i
}

type DateList struct {
	Count int        `json:"count"`
	Items []ListItem `json:"items"`
}

type ListData struct {
	Dates  DateList   `json:"dates"`
	Bucket []ListItem `json:"bucket"`
	Travel []ListItem `json:"travel"`
}

type ListName string

const (
	Dates  ListName = "dates"
	Bucket ListName = "bucket"
	Travel ListName = "travel"
)

func (n ListName) Valid() bool {
	switch n {
	case Dates, Bucket, Travel:
		return true
	}
	return false
}

// Items returns the named list.
func (d ListData) Items(name ListName) []ListItem {
	switch name {
	case Dates:
		return d.Dates.Items
	case Bucket:
		return d.Bucket
	case Travel:
		return d.Travel
	}
	return nil
}

// With returns a copy of d whose named list is replaced by items.
func (d ListData) With(name ListName, items []ListItem) ListData {
	switch name {
	case Dates:
		d.Dates.Items = items
	case Bucket:
		d.Bucket = items
	case Travel:
		d.Travel = items
	}
	return d
}

type ItemRequest struct {
	Text string `json:"text"`
}

type CountRequest struct {
	Count int `json:"count"`
}
