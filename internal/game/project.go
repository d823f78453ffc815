package game

// Face selects what a cell draws.
type Face int

const (
	FaceBack Face = iota
	FacePhoto
	FaceSignature
)

// Cell holds the render instructions for one board grid position.
type Cell struct {
	Row, Col  int
	Slot      int // Empty for decorative cells.
	State     SlotState
	Face      Face
	Src       string // Photo path, when Face == FacePhoto.
	Clickable bool
}

// IsEmpty reports whether the cell is decorative.
func (c Cell) IsEmpty() bool {
	return c.Slot == Empty
}

// Board is the projection of a Snapshot over the heart layout.
type Board [LayoutRows][LayoutCols]Cell

// Project maps a snapshot to render instructions, one cell per grid position.
func Project(s Snapshot) Board {
	var b Board
	for row := 0; row < LayoutRows; row++ {
		for col := 0; col < LayoutCols; col++ {
			slot := heartLayout[row][col]
			cell := Cell{Row: row, Col: col, Slot: slot}
			if slot != Empty && s.Deck.Valid(slot) {
				cell.State = s.SlotState(slot)
				cell.Clickable = s.Clickable(slot)
				if cell.State != FaceDown {
					card := s.Deck[slot]
					if card.IsSignature() {
						cell.Face = FaceSignature
					} else {
						cell.Face = FacePhoto
						cell.Src = string(card)
					}
				}
			}
			b[row][col] = cell
		}
	}
	return b
}
