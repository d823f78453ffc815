package frontend

import (
	"fmt"
	"time"

	"github.com/janpfeifer/HeartPairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

const (
	matchSound    = "/web/sounds/match.mp3"
	mismatchSound = "/web/sounds/mismatch.mp3"
)

// Home is the single page: the heart board while playing, then the proposal.
type Home struct {
	app.Compo

	machine *game.Machine
	snap    game.Snapshot

	fading   bool // Board fading out after the win
	revealed bool // Proposal shown
	portrait bool // Viewport too narrow for the board
}

func (h *Home) OnMount(ctx app.Context) {
	klog.Infof("Home: OnMount called")
	State.Listeners["home"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	if app.IsServer {
		return
	}
	h.checkOrientation()
	h.newSession(ctx)
}

func (h *Home) OnDismount() {
	klog.Infof("Home: OnDismount called")
	delete(State.Listeners, "home")
	if h.machine != nil {
		h.machine.Close()
	}
	State.Disconnect()
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, not reloading not to interrupt the game...")
}

func (h *Home) OnResize(ctx app.Context) {
	h.checkOrientation()
}

// newSession deals a new deck and starts its preview.
func (h *Home) newSession(ctx app.Context) {
	if h.machine != nil {
		h.machine.Close()
	}
	h.fading = false
	h.revealed = false

	State.NewSession()
	m := game.NewMachine(game.NewDeck(), game.RealScheduler{
		Dispatch: func(f func()) {
			ctx.Dispatch(func(ctx app.Context) { f() })
		},
	})
	m.OnChange(h.onMachineChange)
	m.OnWin(func() { h.onWin(ctx) })
	h.machine = m
	h.snap = m.Snapshot()
	m.Start()

	go func() {
		if err := State.ConnectWS(game.RolePlayer); err != nil {
			klog.Errorf("Home: progress reports disabled: %v", err)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			State.ReportProgress(h.snap.Progress(State.SessionID))
		})
	}()
}

// onMachineChange runs in the UI loop, after clicks and timer events.
func (h *Home) onMachineChange() {
	previous := h.snap
	h.snap = h.machine.Snapshot()
	switch {
	case len(h.snap.Matched) > len(previous.Matched):
		State.PlaySound(matchSound)
	case len(h.snap.Incorrect) > 0 && len(previous.Incorrect) == 0:
		State.PlaySound(mismatchSound)
	}
	State.ReportProgress(h.snap.Progress(State.SessionID))
}

func (h *Home) onWin(ctx app.Context) {
	klog.Infof("Home: all pairs found, revealing in %s", game.RevealDelay)
	h.fading = true
	time.AfterFunc(game.RevealDelay, func() {
		ctx.Dispatch(func(ctx app.Context) {
			h.revealed = true
		})
	})
}

func (h *Home) checkOrientation() {
	width := app.Window().Get("innerWidth").Int()
	height := app.Window().Get("innerHeight").Int()
	h.portrait = width < height && width < minBoardWidth
}

func (h *Home) onCellClick(slot int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		if h.machine == nil {
			return
		}
		h.machine.Click(slot)
	}
}

func (h *Home) onHint(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if h.machine != nil && !h.machine.UseHint() {
		klog.V(1).Infof("Home: hint not available")
	}
}

func (h *Home) onPlayAgain(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.Disconnect()
	h.newSession(ctx)
}

// statusText describes the current mode above the board.
func statusText(s game.Snapshot) string {
	switch {
	case s.Won:
		return "You found them all!"
	case s.Mode == game.ModePreviewing:
		return fmt.Sprintf("Memorize the cards... %d", s.PreviewCountdown)
	case s.Mode == game.ModeHintActive:
		return fmt.Sprintf("Hint: %d", s.HintCountdown)
	}
	return fmt.Sprintf("%d of %d pairs found", len(s.Matched)/2, len(s.Deck)/2)
}

func (h *Home) renderHintButton() app.UI {
	if h.snap.Won {
		return app.Text("")
	}
	label := fmt.Sprintf("Hint (%d left)", h.snap.HintsLeft)
	return app.Button().
		Class("secondary hint-button").
		Disabled(h.snap.HintsLeft <= 0 || h.snap.Mode != game.ModePlaying).
		OnClick(h.onHint).
		Text(label)
}

func (h *Home) renderProposal() app.UI {
	return app.Main().Class("container proposal").Body(
		app.Article().Body(
			app.Div().Class("proposal-heart").Text("❤"),
			app.H1().Class("proposal-message").Text(envOr("PROPOSAL_MESSAGE", "Will you be my Valentine?")),
			app.Footer().Body(
				app.Button().Class("outline").Text("Play again").OnClick(h.onPlayAgain),
			),
		),
	)
}

func (h *Home) Render() app.UI {
	if h.portrait {
		return app.Main().Class("container orientation-guard").Body(
			app.Div().Class("rotate-icon").Text("⟳"),
			app.P().Text("Please rotate your device to landscape to play."),
		)
	}

	if h.revealed {
		return h.renderProposal()
	}

	var content app.UI
	if h.machine == nil {
		content = app.Div().Aria("busy", "true").Text("Shuffling the cards...")
	} else {
		boardClass := "board-container"
		if h.fading {
			boardClass += " fading"
		}
		content = app.Div().Class(boardClass).Body(
			app.P().Class("status").Text(statusText(h.snap)),
			h.renderBoard(),
			app.Div().Class("controls").Body(h.renderHintButton()),
			renderPreload(),
		)
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		content,
		app.Footer().Class("text-footer").Text(envOr("FOOTER_TEXT", "")),
	)
}

// envOr returns the app environment value for key, or def if unset.
func envOr(key, def string) string {
	if v := app.Getenv(key); v != "" {
		return v
	}
	return def
}
