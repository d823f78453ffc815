package frontend

import (
	"fmt"

	"github.com/janpfeifer/HeartPairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Watch lists the live sessions and their progress, as reported to the server.
type Watch struct {
	app.Compo
	Error string

	sessions []game.Progress
}

func (w *Watch) OnMount(ctx app.Context) {
	klog.Infof("Watch component: OnMount called")
	w.sessions = State.Sessions()
	State.Listeners["watch"] = func() {
		ctx.Dispatch(func(ctx app.Context) {
			w.sessions = State.Sessions()
			w.Error = State.Error
		})
	}
	if app.IsServer {
		return
	}

	go func() {
		if err := State.ConnectWS(game.RoleWatcher); err != nil {
			klog.Errorf("Watch component: Error connecting: %v", err)
			ctx.Dispatch(func(ctx app.Context) {
				w.Error = fmt.Sprintf("Failed to connect: %v", err)
			})
		}
	}()
}

func (w *Watch) OnDismount() {
	klog.Infof("Watch component: OnDismount called")
	delete(State.Listeners, "watch")
	State.Disconnect()
}

func (w *Watch) OnAppUpdate(ctx app.Context) {
	klog.Infof("Watch component: App update available, reloading...")
	ctx.Reload()
}

func renderSession(p game.Progress) app.UI {
	status := fmt.Sprintf("%d/%d cards, %d hints left, %s", p.Matched, p.Total, p.HintsLeft, p.Mode)
	if p.Won {
		status = "Won! 💍"
	}
	return app.Li().Class("session").Body(
		app.Code().Text(p.SessionID),
		app.Div().Class("session-bar").Body(
			app.Div().
				Class("session-bar-fill").
				Style("width", fmt.Sprintf("%d%%", p.Percent())),
		),
		app.Small().Text(status),
	)
}

func (w *Watch) Render() app.UI {
	if w.Error != "" {
		return app.Main().Class("container").Body(
			app.Article().Body(
				app.H2().Text("Watch Error"),
				app.P().Style("color", "red").Text(w.Error),
			),
		)
	}

	var content app.UI
	if len(w.sessions) == 0 {
		content = app.P().Aria("busy", "true").Text("Waiting for someone to play...")
	} else {
		items := make([]app.UI, 0, len(w.sessions))
		for _, p := range w.sessions {
			items = append(items, renderSession(p))
		}
		content = app.Ul().Class("session-list").Body(items...)
	}

	return app.Main().Class("container").Body(
		&TopBar{Title: "Live sessions"},
		app.Article().Body(
			app.Header().Text(fmt.Sprintf("Sessions (%d)", len(w.sessions))),
			content,
		),
	)
}
