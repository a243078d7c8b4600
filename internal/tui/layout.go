package tui

// Minimum width the layout is computed for; narrower terminals clip
const MinWidth = 40

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	width := max(m.Width, MinWidth)
	m.SearchBar.SetWidth(width)
	m.Row.SetWidth(width - 2)
}
