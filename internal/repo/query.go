package repo

import (
	"strings"

	"github.com/Skotchmaster/epicbeats/internal/domain"
)

const selectInstrumentals = "SELECT id, title, genre, bpm, cover_path, audio_path, price FROM instrumentals WHERE 1 = 1"

// FilterQuery is a parameterized statement with one arg per placeholder.
type FilterQuery struct {
	SQL  string
	Args []any
}

// BuildFilterQuery appends one clause per set criterion in a fixed order:
// genre, bpm (exact wins over the range), price min, price max.
// Values are only ever bound, never written into SQL.
func BuildFilterQuery(f domain.FilterCriteria) FilterQuery {
	var sb strings.Builder
	sb.WriteString(selectInstrumentals)
	args := make([]any, 0, 5)

	if f.Genre != "" {
		sb.WriteString(" AND genre = ?")
		args = append(args, f.Genre)
	}

	if f.BPMExact != 0 {
		sb.WriteString(" AND bpm = ?")
		args = append(args, f.BPMExact)
	} else {
		if f.BPMMin != 0 {
			sb.WriteString(" AND bpm >= ?")
			args = append(args, f.BPMMin)
		}
		if f.BPMMax != 0 {
			sb.WriteString(" AND bpm <= ?")
			args = append(args, f.BPMMax)
		}
	}

	if f.PriceMin != 0 {
		sb.WriteString(" AND price >= ?")
		args = append(args, f.PriceMin)
	}
	if f.PriceMax != 0 {
		sb.WriteString(" AND price <= ?")
		args = append(args, f.PriceMax)
	}

	sb.WriteString(" ORDER BY id ASC")

	return FilterQuery{SQL: sb.String(), Args: args}
}
