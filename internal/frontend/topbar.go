package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
	Title string
}

func (t *TopBar) onToggleSound(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleSound()
}

func (t *TopBar) Render() app.UI {
	soundIcon := "🔊"
	if !State.SoundEnabled {
		soundIcon = "🔇"
	}

	title := t.Title
	if title == "" {
		title = "💕"
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(app.Strong().Class("title").Text(title)),
		),
		app.Ul().Body(
			app.Li().Body(
				app.A().
					Href("#").
					OnClick(t.onToggleSound).
					Style("text-decoration", "none").
					Body(
						app.Span().
							Class("sound-icon").
							Style("font-family", "system-ui").
							Text(soundIcon),
					),
			),
		),
	)
}
