package game

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"k8s.io/klog/v2"
)

// Mode is the session-level mode of the Machine.
type Mode int

const (
	// ModePreviewing shows every card at the start of a session; clicks are ignored.
	ModePreviewing Mode = iota
	// ModePlaying accepts clicks.
	ModePlaying
	// ModeHintActive shows every card after UseHint; clicks are ignored.
	ModeHintActive
)

func (m Mode) String() string {
	switch m {
	case ModePreviewing:
		return "previewing"
	case ModePlaying:
		return "playing"
	case ModeHintActive:
		return "hint"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Machine is the state machine of one game session: selection, matching,
// mismatch flash, preview and hint countdowns, and win detection.
//
// All delayed transitions go through the Scheduler. Methods are safe for
// concurrent use, and the OnChange and OnWin callbacks are always called
// without the internal lock held, so they may call Snapshot.
type Machine struct {
	mu    sync.Mutex
	deck  Deck
	sched Scheduler

	onChange func()
	onWin    func()

	mode      Mode
	preview   int
	hint      int
	hintsLeft int
	selected  []int
	matched   []int
	isMatched []bool
	incorrect []int
	won       bool

	started, closed bool
	winPending      bool

	timers    map[int]Timer
	nextTimer int
}

// NewMachine creates the Machine for a session played with deck.
// Nothing is scheduled until Start is called.
func NewMachine(deck Deck, sched Scheduler) *Machine {
	return &Machine{
		deck:      slices.Clone(deck),
		sched:     sched,
		mode:      ModePreviewing,
		preview:   PreviewSeconds,
		hint:      HintSeconds,
		hintsLeft: InitialHints,
		isMatched: make([]bool, len(deck)),
		timers:    make(map[int]Timer),
	}
}

// OnChange registers f to be called after every state change.
func (m *Machine) OnChange(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = f
}

// OnWin registers f to be called once, when the last pair is matched.
func (m *Machine) OnWin(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWin = f
}

// Start begins the preview countdown. Calling it more than once has no effect.
func (m *Machine) Start() {
	m.mu.Lock()
	if m.started || m.closed {
		m.mu.Unlock()
		return
	}
	m.started = true
	klog.V(1).Infof("Machine: session started, previewing for %d ticks", m.preview)
	if m.preview <= 0 {
		m.preview = 0
		m.mode = ModePlaying
		m.unlockAndNotify()
		return
	}
	m.scheduleLocked(Tick, m.previewTickLocked)
	m.mu.Unlock()
}

// Close ends the session: every pending timer is stopped and later clicks,
// hints and timer callbacks are ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	klog.V(1).Infof("Machine: session closed")
}

// Click handles a click on the given deck slot. It returns false if the
// click was ignored.
func (m *Machine) Click(slot int) bool {
	m.mu.Lock()
	if !m.acceptsClickLocked(slot) {
		m.mu.Unlock()
		klog.V(2).Infof("Machine: click on slot %d ignored", slot)
		return false
	}

	if len(m.selected) == 0 {
		m.selected = []int{slot}
		m.unlockAndNotify()
		return true
	}

	first := m.selected[0]
	m.selected = append(m.selected, slot)
	if m.deck.Pairs(first, slot) {
		m.matchLocked(first, slot)
		m.selected = nil
		klog.V(1).Infof("Machine: matched slots %d and %d (%d/%d)", first, slot, len(m.matched), len(m.deck))
	} else {
		klog.V(1).Infof("Machine: mismatch on slots %d and %d", first, slot)
		m.scheduleLocked(MismatchDelay, func() {
			m.incorrect = []int{first, slot}
			m.scheduleLocked(MismatchDelay, func() {
				m.incorrect = nil
				m.selected = nil
			})
		})
	}
	m.unlockAndNotify()
	return true
}

func (m *Machine) acceptsClickLocked(slot int) bool {
	if m.closed || m.mode != ModePlaying {
		return false
	}
	if !m.deck.Valid(slot) || m.isMatched[slot] {
		return false
	}
	return len(m.selected) < 2 && !slices.Contains(m.selected, slot)
}

func (m *Machine) matchLocked(a, b int) {
	m.matched = append(m.matched, a, b)
	m.isMatched[a] = true
	m.isMatched[b] = true
	if !m.won && len(m.matched) == len(m.deck) {
		m.won = true
		m.winPending = true
		klog.Infof("Machine: all %d cards matched", len(m.deck))
	}
}

// UseHint shows every card for HintSeconds ticks. It returns false, and does
// nothing, if no hints are left or the Machine is not in ModePlaying.
func (m *Machine) UseHint() bool {
	m.mu.Lock()
	if m.closed || m.hintsLeft <= 0 || m.mode != ModePlaying {
		m.mu.Unlock()
		return false
	}
	m.hintsLeft--
	m.mode = ModeHintActive
	m.hint = HintSeconds
	klog.V(1).Infof("Machine: hint used, %d left", m.hintsLeft)
	if m.hint <= 0 {
		m.mode = ModePlaying
	} else {
		m.scheduleLocked(Tick, m.hintTickLocked)
	}
	m.unlockAndNotify()
	return true
}

func (m *Machine) previewTickLocked() {
	m.preview--
	if m.preview <= 0 {
		m.preview = 0
		m.mode = ModePlaying
		klog.V(1).Infof("Machine: preview over")
		return
	}
	m.scheduleLocked(Tick, m.previewTickLocked)
}

func (m *Machine) hintTickLocked() {
	m.hint--
	if m.hint <= 0 {
		m.hint = HintSeconds
		m.mode = ModePlaying
		return
	}
	m.scheduleLocked(Tick, m.hintTickLocked)
}

// scheduleLocked schedules f to run with the lock held, followed by a change
// notification. Must be called with m.mu held.
func (m *Machine) scheduleLocked(d time.Duration, f func()) {
	id := m.nextTimer
	m.nextTimer++
	m.timers[id] = m.sched.AfterFunc(d, func() { m.fire(id, f) })
}

func (m *Machine) fire(id int, f func()) {
	m.mu.Lock()
	if _, ok := m.timers[id]; !ok || m.closed {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)
	f()
	m.unlockAndNotify()
}

// unlockAndNotify releases m.mu and then runs the callbacks owed.
func (m *Machine) unlockAndNotify() {
	won := m.winPending
	m.winPending = false
	onChange, onWin := m.onChange, m.onWin
	m.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	if won && onWin != nil {
		onWin()
	}
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Deck:             slices.Clone(m.deck),
		Mode:             m.mode,
		PreviewCountdown: m.preview,
		HintCountdown:    m.hint,
		HintsLeft:        m.hintsLeft,
		Selected:         slices.Clone(m.selected),
		Matched:          slices.Clone(m.matched),
		Incorrect:        slices.Clone(m.incorrect),
		Won:              m.won,
	}
}
