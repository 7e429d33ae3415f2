package theme

func builtins() []Theme {
	return []Theme{
		{
			Name:        "default",
			Foreground:  "#d4d4d4",
			Dim:         "#6b6b6b",
			Accent:      "#7C3AED",
			Border:      "#3e3e3e",
			BorderFocus: "#7C3AED",
			Title:       "#d4d4d4",
			StatusOK:    "#4ec970",
			StatusWarn:  "#e5c07b",
			StatusError: "#e06c75",
			ButtonFg:    "#ffffff",
			ButtonBg:    "#5b21b6",
		},
		{
			Name:        "gruvbox",
			Foreground:  "#ebdbb2",
			Dim:         "#928374",
			Accent:      "#fe8019",
			Border:      "#504945",
			BorderFocus: "#fe8019",
			Title:       "#ebdbb2",
			StatusOK:    "#b8bb26",
			StatusWarn:  "#fabd2f",
			StatusError: "#fb4934",
			ButtonFg:    "#282828",
			ButtonBg:    "#fe8019",
		},
		{
			Name:        "nord",
			Foreground:  "#d8dee9",
			Dim:         "#4c566a",
			Accent:      "#88c0d0",
			Border:      "#3b4252",
			BorderFocus: "#88c0d0",
			Title:       "#eceff4",
			StatusOK:    "#a3be8c",
			StatusWarn:  "#ebcb8b",
			StatusError: "#bf616a",
			ButtonFg:    "#2e3440",
			ButtonBg:    "#88c0d0",
		},
		{
			Name:        "dracula",
			Foreground:  "#f8f8f2",
			Dim:         "#6272a4",
			Accent:      "#bd93f9",
			Border:      "#44475a",
			BorderFocus: "#ff79c6",
			Title:       "#f8f8f2",
			StatusOK:    "#50fa7b",
			StatusWarn:  "#f1fa8c",
			StatusError: "#ff5555",
			ButtonFg:    "#282a36",
			ButtonBg:    "#bd93f9",
		},
	}
}
