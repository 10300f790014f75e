// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dialog

import (
	"strings"
	"testing"

	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/engine/enginetest"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func char(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func systems() (*enginetest.RenderSystem, *enginetest.RenderSystem, []engine.RenderSystem) {
	vk := enginetest.NewRenderSystem("Vulkan Rendering Subsystem")
	gl := enginetest.NewRenderSystem("OpenGL 3+ Rendering Subsystem")
	return vk, gl, []engine.RenderSystem{vk, gl}
}

func TestModelStartsAtCurrent(t *testing.T) {
	_, gl, all := systems()
	m := newModel(all, gl)
	assert.Same(t, gl, m.system())
	assert.Equal(t, 0, m.row)
}

func TestModelSelectSystem(t *testing.T) {
	vk, gl, all := systems()
	m := newModel(all, nil)
	assert.Same(t, vk, m.system())
	assert.Equal(t, pending, m.handleKey(key(tcell.KeyRight)))
	assert.Same(t, gl, m.system())
	assert.Equal(t, pending, m.handleKey(key(tcell.KeyRight)))
	assert.Same(t, vk, m.system())
	m.handleKey(char('h'))
	assert.Same(t, gl, m.system())
	assert.Equal(t, accepted, m.handleKey(key(tcell.KeyEnter)))
}

func TestModelCycleOption(t *testing.T) {
	vk, _, all := systems()
	m := newModel(all, vk)
	m.handleKey(key(tcell.KeyDown))
	assert.Equal(t, 1, m.row)
	m.handleKey(key(tcell.KeyRight))
	assert.Equal(t, "1280 x 720", vk.Options.Value("Video Mode"))
	m.handleKey(key(tcell.KeyRight))
	assert.Equal(t, "800 x 600", vk.Options.Value("Video Mode"))

	m.handleKey(char('j'))
	m.handleKey(char(' '))
	assert.Equal(t, "Yes", vk.Options.Value("Full Screen"))

	// wraps back to the system row
	m.handleKey(key(tcell.KeyDown))
	assert.Equal(t, 0, m.row)
	m.handleKey(key(tcell.KeyUp))
	assert.Equal(t, 2, m.row)
}

func TestModelImmutableOption(t *testing.T) {
	vk, _, all := systems()
	opt := vk.Options.Add("sRGB Gamma Conversion", "Yes", "Yes", "No")
	opt.Immutable = true
	m := newModel(all, vk)
	m.row = 3
	m.handleKey(key(tcell.KeyRight))
	assert.Equal(t, "Yes", vk.Options.Value("sRGB Gamma Conversion"))
	assert.Empty(t, m.err)
}

func TestModelInvalid(t *testing.T) {
	vk, _, all := systems()
	vk.InvalidReason = "no suitable adapter"
	m := newModel(all, vk)
	assert.Equal(t, pending, m.handleKey(key(tcell.KeyEnter)))
	assert.Equal(t, "no suitable adapter", m.err)

	// changing anything clears the message
	m.handleKey(key(tcell.KeyRight))
	assert.Empty(t, m.err)
}

func TestModelCancel(t *testing.T) {
	for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape), key(tcell.KeyCtrlC), char('q')} {
		_, _, all := systems()
		m := newModel(all, nil)
		assert.Equal(t, canceled, m.handleKey(ev), ev.Name())
	}
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(100, 20)

	vk, _, all := systems()
	vk.InvalidReason = "bad mode"
	m := newModel(all, vk)
	m.handleKey(key(tcell.KeyEnter))
	m.draw(s, "Minimal Setup")
	s.Show()

	text := screenText(s)
	assert.Contains(t, text, "Minimal Setup")
	assert.Contains(t, text, "< Vulkan Rendering Subsystem >")
	assert.Contains(t, text, "< 800 x 600 >")
	assert.Contains(t, text, "Full Screen")
	assert.Contains(t, text, "bad mode")
}

// scriptScreen queues key events as soon as it is initialized.
type scriptScreen struct {
	tcell.SimulationScreen
	keys []tcell.Key
}

func (s *scriptScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	for _, k := range s.keys {
		if err := s.PostEvent(key(k)); err != nil {
			return err
		}
	}
	return nil
}

func TestDisplay(t *testing.T) {
	_, gl, all := systems()
	d := New("Setup", nil)
	d.NewScreen = func() (tcell.Screen, error) {
		return &scriptScreen{tcell.NewSimulationScreen("UTF-8"), []tcell.Key{tcell.KeyRight, tcell.KeyEnter}}, nil
	}
	rs, ok := d.Display(all, nil)
	require.True(t, ok)
	assert.Same(t, gl, rs)
}

func TestDisplayCanceled(t *testing.T) {
	_, _, all := systems()
	d := New("Setup", nil)
	d.NewScreen = func() (tcell.Screen, error) {
		return &scriptScreen{tcell.NewSimulationScreen("UTF-8"), []tcell.Key{tcell.KeyDown, tcell.KeyEscape}}, nil
	}
	rs, ok := d.Display(all, nil)
	assert.False(t, ok)
	assert.Nil(t, rs)
}

func TestDisplayNoSystems(t *testing.T) {
	d := New("Setup", nil)
	d.NewScreen = func() (tcell.Screen, error) {
		t.Fatal("screen opened")
		return nil, nil
	}
	rs, ok := d.Display(nil, nil)
	assert.False(t, ok)
	assert.Nil(t, rs)
}
