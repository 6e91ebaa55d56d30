package renderer

import "github.com/gdamore/tcell/v2"

// Theme holds the resolved styles for one color scheme.
type Theme struct {
	Name string

	Text        tcell.Style
	CurrentLine tcell.Style
	Sidebar     tcell.Style
	Selected    tcell.Style
	Accent      tcell.Style

	StatusMode tcell.Style
	StatusFile tcell.Style
	StatusFill tcell.Style

	// Powerline arrow transitions between the status segments.
	ArrowModeFile tcell.Style
	ArrowFileFill tcell.Style
}

type rgb struct{ r, g, b int32 }

func (c rgb) color() tcell.Color { return tcell.NewRGBColor(c.r, c.g, c.b) }

type palette struct {
	bg, fg, sel, accent, sidebar, highlight rgb
}

var palettes = map[string]palette{
	"boring": {
		bg:        rgb{40, 42, 54},
		fg:        rgb{248, 248, 242},
		sel:       rgb{68, 71, 90},
		accent:    rgb{98, 114, 164},
		sidebar:   rgb{52, 55, 70},
		highlight: rgb{52, 55, 70},
	},
	"shrimp": {
		bg:        rgb{30, 30, 30},
		fg:        rgb{250, 240, 230},
		sel:       rgb{80, 60, 50},
		accent:    rgb{255, 165, 125},
		sidebar:   rgb{50, 45, 40},
		highlight: rgb{50, 45, 40},
	},
	"catpuccin": {
		bg:        rgb{30, 30, 46},
		fg:        rgb{205, 214, 244},
		sel:       rgb{69, 71, 90},
		accent:    rgb{137, 180, 250},
		sidebar:   rgb{24, 24, 37},
		highlight: rgb{69, 71, 90},
	},
}

// Themes lists the selectable theme names.
func Themes() []string { return []string{"boring", "catpuccin", "shrimp"} }

// themeNamed resolves a theme, falling back to boring for unknown
// names so a stale config value never blanks the screen.
func themeNamed(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		name = "boring"
		p = palettes[name]
	}

	fg := p.fg.color()
	bg := p.bg.color()
	sidebar := p.sidebar.color()
	highlight := p.highlight.color()
	accent := p.accent.color()

	return Theme{
		Name:        name,
		Text:        tcell.StyleDefault.Foreground(fg).Background(bg),
		CurrentLine: tcell.StyleDefault.Foreground(fg).Background(highlight),
		Sidebar:     tcell.StyleDefault.Foreground(fg).Background(sidebar),
		Selected:    tcell.StyleDefault.Foreground(fg).Background(p.sel.color()).Bold(true),
		Accent:      tcell.StyleDefault.Foreground(accent).Background(bg).Bold(true),

		StatusMode: tcell.StyleDefault.Foreground(bg).Background(accent).Bold(true),
		StatusFile: tcell.StyleDefault.Foreground(fg).Background(highlight),
		StatusFill: tcell.StyleDefault.Foreground(fg).Background(sidebar),

		ArrowModeFile: tcell.StyleDefault.Foreground(accent).Background(highlight),
		ArrowFileFill: tcell.StyleDefault.Foreground(highlight).Background(sidebar),
	}
}
