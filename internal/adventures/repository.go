package adventures

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "couple_lists"

type Repository interface {
	Load(ctx context.Context) (ListData, error)
	Save(ctx context.Context, data ListData) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, Schema(), log)
}

// Schema is the couple_lists document. Version 1 renamed the early
// bucketList/travelList keys and made dates an object.
func Schema() document.Schema[ListData] {
	return document.Schema[ListData]{
		Key:        DocumentKey,
		Migrations: []document.Migration{renameLegacyLists},
		Default:    func() ListData { return ListData{} },
		Normalize:  normalize,
	}
}

func renameLegacyLists(raw json.RawMessage) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for current, legacy := range map[string]string{"bucket": "bucketList", "travel": "travelList"} {
		old, ok := m[legacy]
		if !ok {
			continue
		}
		if isNull(m[current]) {
			m[current] = old
		}
		delete(m, legacy)
	}
	if dates, ok := m["dates"]; ok {
		var probe map[string]json.RawMessage
		if json.Unmarshal(dates, &probe) != nil {
			delete(m, "dates")
		}
	}
	return json.Marshal(m)
}

// isNull reports a missing or JSON null value.
func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func normalize(d *ListData) {
	if d.Dates.Items == nil {
		d.Dates.Items = []ListItem{}
	}
	if d.Dates.Count < 0 {
		d.Dates.Count = 0
	}
	if d.Bucket == nil {
		d.Bucket = []ListItem{}
	}
	if d.Travel == nil {
		d.Travel = []ListItem{}
	}
}
