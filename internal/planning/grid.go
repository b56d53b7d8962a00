package planning

import (
	"sort"
	"strings"

	"chantier-planning/internal/models"
)

// Entity is a grid row: a user or a chantier reduced to what row rendering
// and ordering need. StatusRank is the externally supplied priority of the
// entity's status (lower renders first).
type Entity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	StatusRank int    `json:"status_rank"`
}

type Cell struct {
	Day          DayColumn             `json:"day"`
	Affectations []*models.Affectation `json:"affectations"`
}

type Row struct {
	Entity Entity `json:"entity"`
	Cells  []Cell `json:"cells"`
}

// SortEntities orders rows by status rank then case-insensitive name. The
// sort is stable and works on a copy; the input slice is left untouched.
func SortEntities(entities []Entity) []Entity {
	sorted := make([]Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StatusRank != sorted[j].StatusRank {
			return sorted[i].StatusRank < sorted[j].StatusRank
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

// ComposeGrid combines day columns, sorted row entities and the index into
// the renderable grid. Pure composition, inputs are not mutated.
func ComposeGrid(days []DayColumn, sortedEntities []Entity, ix *Index) []Row {
	rows := make([]Row, 0, len(sortedEntities))
	for _, e := range sortedEntities {
		cells := make([]Cell, 0, len(days))
		for _, d := range days {
			cells = append(cells, Cell{Day: d, Affectations: ix.Lookup(e.ID, d.Date)})
		}
		rows = append(rows, Row{Entity: e, Cells: cells})
	}
	return rows
}
