package team

import (
	"strconv"
	"strings"
)

// Team is static reference data for one Premier League club.
type Team struct {
	ID        int64
	Name      string
	ShortName string
}

// DeriveShort builds a 3-letter code from a team name: letters only,
// first three, uppercased. Loaders use it when the source dataset
// carries no short_name column at all; an empty cell in a present
// column stays empty.
func DeriveShort(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
		if b.Len() == 3 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// NameByID maps team ids to names.
func NameByID(teams []Team) map[int64]string {
	out := make(map[int64]string, len(teams))
	for _, t := range teams {
		out[t.ID] = t.Name
	}
	return out
}

// ResolveName returns the mapped name, or the raw id rendered as text so
// downstream joins stay non-empty.
func ResolveName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.FormatInt(id, 10)
}
