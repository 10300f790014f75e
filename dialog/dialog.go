// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dialog provides a terminal dialog for choosing and
// configuring a render system.
package dialog

import (
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/minimal/engine"
	"github.com/gdamore/tcell/v2"
)

// Dialog is a terminal [engine.ConfigDialog].
type Dialog struct {
	Title string

	// NewScreen opens the terminal; it defaults to tcell.NewScreen.
	NewScreen func() (tcell.Screen, error)

	// Logger reports terminal errors; it defaults to discarding.
	Logger *slog.Logger
}

// New returns a dialog with the given title.
func New(title string, log *slog.Logger) *Dialog {
	return &Dialog{Title: title, Logger: log}
}

// Display runs the dialog on the terminal until the user accepts a
// valid configuration or cancels.
func (d *Dialog) Display(systems []engine.RenderSystem, current engine.RenderSystem) (engine.RenderSystem, bool) {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(systems) == 0 {
		log.Error("no render systems to configure")
		return nil, false
	}
	newScreen := d.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	s, err := newScreen()
	if err != nil {
		log.Error("opening terminal", "err", err)
		return nil, false
	}
	if err := s.Init(); err != nil {
		log.Error("initializing terminal", "err", err)
		return nil, false
	}
	defer s.Fini()

	m := newModel(systems, current)
	if m.run(s, d.Title) != accepted {
		return nil, false
	}
	return m.system(), true
}

type result int

const (
	pending result = iota
	accepted
	canceled
)

// model is the dialog state. Row 0 selects the render system and
// row i > 0 the i-th option of the selected system.
type model struct {
	systems []engine.RenderSystem
	sys     int
	row     int
	err     string
}

func newModel(systems []engine.RenderSystem, current engine.RenderSystem) *model {
	m := &model{systems: systems}
	for i, rs := range systems {
		if rs == current {
			m.sys = i
		}
	}
	return m
}

func (m *model) system() engine.RenderSystem { return m.systems[m.sys] }

func (m *model) rows() int { return 1 + len(m.system().ConfigOptions()) }

func (m *model) run(s tcell.Screen, title string) result {
	for {
		m.draw(s, title)
		s.Show()
		switch ev := s.PollEvent().(type) {
		case nil:
			return canceled
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if r := m.handleKey(ev); r != pending {
				return r
			}
		}
	}
}

func (m *model) handleKey(ev *tcell.EventKey) result {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return canceled
	case tcell.KeyEnter:
		if err := m.system().ValidateConfigOptions(); err != nil {
			m.err = err.Error()
			return pending
		}
		return accepted
	case tcell.KeyUp:
		m.move(-1)
	case tcell.KeyDown, tcell.KeyTab:
		m.move(1)
	case tcell.KeyLeft:
		m.cycle(-1)
	case tcell.KeyRight:
		m.cycle(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return canceled
		case 'k':
			m.move(-1)
		case 'j':
			m.move(1)
		case 'h':
			m.cycle(-1)
		case 'l', ' ':
			m.cycle(1)
		}
	}
	return pending
}

func (m *model) move(d int) {
	n := m.rows()
	m.row = (m.row + d + n) % n
}

func (m *model) cycle(d int) {
	m.err = ""
	if m.row == 0 {
		n := len(m.systems)
		m.sys = (m.sys + d + n) % n
		return
	}
	opt := m.system().ConfigOptions()[m.row-1]
	n := len(opt.PossibleValues)
	if opt.Immutable || n == 0 {
		return
	}
	i := 0
	for j, v := range opt.PossibleValues {
		if v == opt.CurrentValue {
			i = j
		}
	}
	v := opt.PossibleValues[(i+d+n)%n]
	if err := m.system().SetConfigOption(opt.Name, v); err != nil {
		m.err = err.Error()
	}
}

var (
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleRow      = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleFixed    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (m *model) draw(s tcell.Screen, title string) {
	s.Clear()
	put(s, 1, 0, title, styleTitle)
	line := func(row, y int, label, value string, st tcell.Style) {
		if row == m.row {
			st = styleSelected
		}
		put(s, 2, y, fmt.Sprintf("%-20s < %s >", label, value), st)
	}
	line(0, 2, engine.RenderSystemKey, m.system().Name(), styleRow)
	y := 4
	for i, opt := range m.system().ConfigOptions() {
		st := styleRow
		if opt.Immutable {
			st = styleFixed
		}
		line(i+1, y, opt.Name, opt.CurrentValue, st)
		y++
	}
	y++
	put(s, 1, y, "up/down: select  left/right: change  enter: accept  esc: cancel", styleHelp)
	if m.err != "" {
		put(s, 1, y+2, m.err, styleError)
	}
}

func put(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
