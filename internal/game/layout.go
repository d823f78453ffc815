package game

// Empty marks a decorative, unclickable board cell.
const Empty = -1

// Dimensions of the heart-shaped board.
const (
	LayoutRows = 7
	LayoutCols = 9
)

const x = Empty

// heartLayout maps each grid cell to a deck slot. The non-empty cells draw a heart
// and hold every slot in [0, DeckSize) exactly once.
var heartLayout = [LayoutRows][LayoutCols]int{
	{x, x, 0, 1, x, 2, 3, x, x},
	{x, 4, 5, 6, 7, 8, 9, 10, x},
	{11, 12, 13, 14, 15, 16, 17, 18, 19},
	{x, 20, 21, 22, 23, 24, 25, 26, x},
	{x, x, 27, 28, 29, 30, 31, x, x},
	{x, x, x, 32, 33, 34, x, x, x},
	{x, x, x, 35, 36, 37, x, x, x},
}

// HeartLayout returns a copy of the board layout.
func HeartLayout() [LayoutRows][LayoutCols]int {
	return heartLayout
}

// SlotAt returns the deck slot shown at the given cell, or Empty.
// Cells outside of the grid are Empty.
func SlotAt(row, col int) int {
	if row < 0 || row >= LayoutRows || col < 0 || col >= LayoutCols {
		return Empty
	}
	return heartLayout[row][col]
}
