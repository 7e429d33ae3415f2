package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
)

// BenchmarkViewGrid renders a full frame of eight panels at 160x48.
func BenchmarkViewGrid(b *testing.B) {
	ws := make([]app.Widget, 8)
	for i := range ws {
		ws[i] = newMockWidget(fmt.Sprintf("w%d", i), fmt.Sprintf("Widget %d", i))
	}
	m, _ := tuiUpdate(New(ws), tea.WindowSizeMsg{Width: 160, Height: 48})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.View()
	}
}
