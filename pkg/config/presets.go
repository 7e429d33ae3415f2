package config

// Layout presets.
const (
	PresetDashboard = "dashboard"
	PresetStacked   = "stacked"
	PresetUsers     = "users"
)

// PresetNames lists the known presets.
var PresetNames = []string{PresetDashboard, PresetStacked, PresetUsers}

// Resolve returns the rows to lay out: the explicit rows if any, otherwise
// the named preset. Unknown presets resolve to the dashboard.
func (l LayoutConfig) Resolve() LayoutConfig {
	if len(l.Rows) > 0 {
		return LayoutConfig{Preset: "custom", Rows: l.Rows}
	}
	return LayoutPreset(l.Preset)
}

// LayoutPreset returns the named preset.
//
//	dashboard: [users]            (ratio 3)
//	           [clock|fruits|letters] (ratio 2)
//	stacked:   users, clock, fruits, letters, one per row
//	users:     [users] with a one-line clock underneath
func LayoutPreset(name string) LayoutConfig {
	switch name {
	case PresetStacked:
		return LayoutConfig{Preset: PresetStacked, Rows: []RowConfig{
			{Ratio: 4, Children: []ChildConfig{{Type: WidgetUsers, Ratio: 1}}},
			{Ratio: 1, Children: []ChildConfig{{Type: WidgetClock, Ratio: 1}}},
			{Ratio: 2, Children: []ChildConfig{{Type: WidgetFruits, Ratio: 1}}},
			{Ratio: 2, Children: []ChildConfig{{Type: WidgetLetters, Ratio: 1}}},
		}}
	case PresetUsers:
		return LayoutConfig{Preset: PresetUsers, Rows: []RowConfig{
			{Ratio: 5, Children: []ChildConfig{{Type: WidgetUsers, Ratio: 1}}},
			{Ratio: 1, Children: []ChildConfig{{Type: WidgetClock, Ratio: 1}}},
		}}
	default:
		return LayoutConfig{Preset: PresetDashboard, Rows: []RowConfig{
			{Ratio: 3, Children: []ChildConfig{{Type: WidgetUsers, Ratio: 1}}},
			{Ratio: 2, Children: []ChildConfig{
				{Type: WidgetClock, Ratio: 2},
				{Type: WidgetFruits, Ratio: 1},
				{Type: WidgetLetters, Ratio: 1},
			}},
		}}
	}
}

// Widgets returns the widget types in row order, without duplicates.
func (l LayoutConfig) Widgets() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range l.Rows {
		for _, c := range r.Children {
			if !seen[c.Type] {
				seen[c.Type] = true
				out = append(out, c.Type)
			}
		}
	}
	return out
}
