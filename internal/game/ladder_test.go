package game

import "testing"

func TestLadderCellBounds(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	if ladder.Cell(-1) != nil {
		t.Fatal("Cell(-1) should be nil")
	}
	if ladder.Cell(ladder.Len()) != nil {
		t.Fatal("Cell(Len()) should be nil")
	}
	if got := ladder.Cell(25).Price; got != 67 {
		t.Fatalf("Cell(25).Price = %d, want 67", got)
	}
}

func TestVacantScanSkipsOccupied(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	occupant := &Corporation{}
	ladder.Cell(11).Corporation = occupant
	ladder.Cell(12).Corporation = occupant

	next := ladder.NextVacant(ladder.Cell(10))
	if next == nil || next.Index != 13 {
		t.Fatalf("NextVacant past occupied cells = %v, want index 13", next)
	}

	prev := ladder.PrevVacant(ladder.Cell(13))
	if prev == nil || prev.Index != 10 {
		t.Fatalf("PrevVacant past occupied cells = %v, want index 10", prev)
	}
}

func TestVacantScanBoundaries(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	if got := ladder.NextVacant(ladder.Cell(ladder.Len() - 1)); got != nil {
		t.Fatalf("NextVacant at top = %v, want nil", got)
	}
	if got := ladder.PrevVacant(ladder.Cell(0)); got != nil {
		t.Fatalf("PrevVacant at bottom = %v, want nil", got)
	}
}

func TestValidFoundingPrice(t *testing.T) {
	ladder := NewLadder(DefaultLadderPrices)
	company := &Company{Name: "Grand Junction", Value: 100}

	tests := []struct {
		index int
		want  bool
	}{
		{22, true},  // $50: two shares exactly cover the value
		{25, true},  // $67
		{21, false}, // $45: two shares fall short
		{30, false}, // $108: price above the value
	}
	for _, tc := range tests {
		cell := ladder.Cell(tc.index)
		if got := cell.ValidFoundingPrice(company); got != tc.want {
			t.Fatalf("ValidFoundingPrice at $%d = %v, want %v", cell.Price, got, tc.want)
		}
	}
}
