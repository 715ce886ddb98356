package layout

import "github.com/goliatone/go-formrender/pkg/model"

// Cell is a single field placed inside a group.
type Cell struct {
	Field   model.Field
	Index   int
	Colspan int
	Width   int
}

// Group is one row of the default layout.
type Group struct {
	// Index is the zero-based group number.
	Index int
	// Position is the index, in the sorted field sequence, of the group's
	// last field.
	Position int
	Cells    []Cell
}

// Size returns the number of fields in the group.
func (g Group) Size() int {
	return len(g.Cells)
}

// Colspan returns the summed colspan of the group's cells.
func (g Group) Colspan() int {
	total := 0
	for _, cell := range g.Cells {
		total += cell.Colspan
	}
	return total
}

// Plan is the computed layout for a form.
type Plan struct {
	Mode    model.DisplayMode
	MCM     int
	MaxSize int
	Groups  []Group
}

// SeparateBlocks reports whether every group is emitted in its own output
// block instead of one shared grid.
func (p Plan) SeparateBlocks() bool {
	return p.Mode == model.DisplayModeNone
}

// Partition splits fields, already in display order, into rows. A field
// starts a new row unless it asks to be grouped with its predecessor; the
// first field always starts a row.
func Partition(fields []model.Field) [][]model.Field {
	var groups [][]model.Field
	for idx, field := range fields {
		if idx == 0 || !field.GroupWithPrevious {
			groups = append(groups, []model.Field{field})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], field)
	}
	return groups
}

// Sizes returns the length of each group.
func Sizes(groups [][]model.Field) []int {
	sizes := make([]int, 0, len(groups))
	for _, group := range groups {
		if len(group) > 0 {
			sizes = append(sizes, len(group))
		}
	}
	return sizes
}

// Compute groups fields and assigns colspans and widths for the display
// mode. Aligned mode gives every cell the width of a cell in the largest
// group and lets the last cell absorb the remainder; other modes split each
// row evenly.
func Compute(fields []model.Field, mode model.DisplayMode) Plan {
	groups := Partition(fields)
	sizes := Sizes(groups)
	plan := Plan{
		Mode:    mode,
		MCM:     LCM(sizes),
		MaxSize: Max(sizes),
		Groups:  make([]Group, 0, len(groups)),
	}

	position := -1
	for idx, members := range groups {
		position += len(members)
		var spans []int
		if mode == model.DisplayModeAligned {
			spans = AlignedColspans(plan.MCM, plan.MaxSize, len(members))
		} else {
			spans = EvenColspans(plan.MCM, len(members))
		}

		group := Group{Index: idx, Position: position, Cells: make([]Cell, len(members))}
		for i, field := range members {
			group.Cells[i] = Cell{
				Field:   field,
				Index:   i,
				Colspan: spans[i],
				Width:   WidthPercent(spans[i], plan.MCM),
			}
		}
		plan.Groups = append(plan.Groups, group)
	}
	return plan
}

// EvenColspans splits mcm evenly across n cells.
func EvenColspans(mcm, n int) []int {
	if n <= 0 {
		return nil
	}
	spans := make([]int, n)
	for i := range spans {
		spans[i] = mcm / n
	}
	return spans
}

// AlignedColspans sizes n cells at mcm/maxSize each, except the last which
// receives mcm-(n-1)*(mcm/maxSize). Every span is floored at 1 so uneven
// inputs never produce empty or negative cells.
func AlignedColspans(mcm, maxSize, n int) []int {
	if n <= 0 {
		return nil
	}
	if maxSize <= 0 {
		maxSize = n
	}
	base := mcm / maxSize
	if base < 1 {
		base = 1
	}
	spans := make([]int, n)
	for i := 0; i < n-1; i++ {
		spans[i] = base
	}
	last := mcm - (n-1)*base
	if last < 1 {
		last = 1
	}
	spans[n-1] = last
	return spans
}

// WidthPercent converts a colspan into a floored percentage of mcm.
func WidthPercent(colspan, mcm int) int {
	if mcm <= 0 {
		return 0
	}
	return (100 * colspan) / mcm
}
