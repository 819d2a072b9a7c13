package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg struct{ n int }
type slowMsg struct{}

// counterModel loads a starting value, counts "+" presses and quits on
// esc or ctrl+c. "s" triggers a Cmd slower than the default timeout.
type counterModel struct {
	n      int
	slow   bool
	width  int
	quit   bool
	loaded int
}

func (m *counterModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return loadedMsg{n: 10} },
		func() tea.Msg { return loadedMsg{n: 5} },
	)
}

func (m *counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case loadedMsg:
		m.n += msg.n
		m.loaded++
	case slowMsg:
		m.slow = true
	case tea.QuitMsg:
		m.quit = true
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			m.n++
		case "s":
			return m, func() tea.Msg {
				time.Sleep(300 * time.Millisecond)
				return slowMsg{}
			}
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *counterModel) View() string {
	return fmt.Sprintf("n=%d width=%d", m.n, m.width)
}

func TestDriver_DrainsInitBatch(t *testing.T) {
	m := &counterModel{}
	d := New(t, m, WithSize(80, 24))
	d.DrainInit()

	assert.Equal(t, 2, m.loaded)
	assert.Equal(t, "n=15 width=80", d.View())

	d.PressKeys("+++")
	assert.Equal(t, 18, m.n)
}

func TestDriver_SkipsSlowCmds(t *testing.T) {
	m := &counterModel{}
	d := New(t, m)
	d.PressKey('s')
	assert.False(t, m.slow, "default timeout skips a 300ms Cmd")

	m = &counterModel{}
	d = New(t, m, WithCmdTimeout(2*time.Second))
	d.PressKey('s')
	assert.True(t, m.slow)
}

func TestDriver_Quit(t *testing.T) {
	for name, press := range map[string]func(*Driver){
		"esc":    (*Driver).PressEsc,
		"ctrl+c": (*Driver).PressCtrlC,
	} {
		t.Run(name, func(t *testing.T) {
			m := &counterModel{}
			d := New(t, m)
			press(d)
			assert.True(t, d.Quitting)
			assert.True(t, m.quit)

			d.PressKey('+')
			assert.Equal(t, 0, m.n, "nothing is delivered after quitting")
		})
	}
}
