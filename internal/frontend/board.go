package frontend

import (
	"fmt"

	"github.com/janpfeifer/HeartPairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// minBoardWidth is the narrowest viewport, in CSS pixels, that fits the board.
const minBoardWidth = 600

func (h *Home) renderBoard() app.UI {
	board := game.Project(h.snap)
	cells := make([]app.UI, 0, game.LayoutRows*game.LayoutCols)
	for _, row := range board {
		for _, cell := range row {
			cells = append(cells, h.renderCell(cell))
		}
	}
	return app.Div().Class("board").Body(cells...)
}

func (h *Home) renderCell(cell game.Cell) app.UI {
	if cell.IsEmpty() {
		return app.Div().Class("cell cell-empty")
	}

	class := "cell cell-" + cell.State.String()
	if cell.Clickable {
		class += " clickable"
	}
	body := []app.UI{renderFace(cell)}
	if cell.State == game.IncorrectFlash {
		body = append(body, app.Div().Class("card card-incorrect"))
	}

	div := app.Div().Class(class).Body(body...)
	if cell.Clickable {
		div = div.OnClick(h.onCellClick(cell.Slot))
	}
	return div
}

func renderFace(cell game.Cell) app.UI {
	switch cell.Face {
	case game.FacePhoto:
		return app.Img().
			Class("card card-photo").
			Src(cell.Src).
			Alt(fmt.Sprintf("Photo %d", cell.Slot+1))
	case game.FaceSignature:
		return app.Div().Class("card card-signature").Body(
			app.Span().Text(envOr("SIGNATURE_TEXT", "♥")),
		)
	}
	return app.Div().Class("card card-back")
}

// renderPreload loads every photo up front, so cards flip without a delay.
func renderPreload() app.UI {
	var imgs []app.UI
	for i, card := range game.Catalog() {
		if card.IsSignature() {
			continue
		}
		imgs = append(imgs, app.Img().Src(string(card)).Alt(fmt.Sprintf("Preload %d", i+1)))
	}
	return app.Div().Style("display", "none").Body(imgs...)
}
