package game

// DefaultLadderPrices is the standard share-price track. Index 0 is the
// bankruptcy floor; a corporation sitting there has a worthless share.
var DefaultLadderPrices = []int{
	0, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 16, 18, 20, 22, 24,
	27, 30, 33, 37, 41, 45, 50, 55, 61, 67, 74, 81, 89, 98,
	108, 119, 131, 144, 158, 174, 191, 210, 231, 254, 280, 308,
	339, 373, 410, 451,
}

// PriceCell is one slot on the share-price ladder. At most one corporation
// occupies a cell at a time; Corporation is nil while the cell is vacant.
type PriceCell struct {
	Price       int
	Index       int
	Corporation *Corporation
}

// Vacant reports whether no corporation sits on the cell.
func (c *PriceCell) Vacant() bool {
	return c.Corporation == nil
}

// ValidFoundingPrice reports whether a corporation seeded with the given
// company may be founded at this cell: the price must not exceed the
// company's value, and two shares at this price must cover it.
func (c *PriceCell) ValidFoundingPrice(company *Company) bool {
	return c.Price <= company.Value && 2*c.Price >= company.Value
}

// Ladder is the ordered sequence of price cells shared by every corporation
// in a session.
type Ladder struct {
	cells []*PriceCell
}

// NewLadder builds a ladder from an ascending price list.
func NewLadder(prices []int) *Ladder {
	cells := make([]*PriceCell, len(prices))
	for i, p := range prices {
		cells[i] = &PriceCell{Price: p, Index: i}
	}
	return &Ladder{cells: cells}
}

// Len returns the number of cells.
func (l *Ladder) Len() int {
	return len(l.cells)
}

// Cell returns the cell at index i, or nil when i is out of range.
func (l *Ladder) Cell(i int) *PriceCell {
	if i < 0 || i >= len(l.cells) {
		return nil
	}
	return l.cells[i]
}

// Cells returns the underlying cells in ladder order.
func (l *Ladder) Cells() []*PriceCell {
	return l.cells
}

// NextVacant scans strictly above from and returns the first vacant cell,
// skipping cells occupied by other corporations. Returns nil when the top of
// the ladder is reached without finding one.
func (l *Ladder) NextVacant(from *PriceCell) *PriceCell {
	for i := from.Index + 1; i < len(l.cells); i++ {
		if l.cells[i].Vacant() {
			return l.cells[i]
		}
	}
	return nil
}

// PrevVacant scans strictly below from and returns the first vacant cell, or
// nil at the bottom of the ladder.
func (l *Ladder) PrevVacant(from *PriceCell) *PriceCell {
	for i := from.Index - 1; i >= 0; i-- {
		if l.cells[i].Vacant() {
			return l.cells[i]
		}
	}
	return nil
}
