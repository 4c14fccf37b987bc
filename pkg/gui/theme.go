package gui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/qnkhuat/termtris/pkg/mino"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name     string      `json:"name"`
	Empty    tcell.Color `json:"empty"`
	Score    tcell.Color `json:"score"`
	Nick     tcell.Color `json:"nick"`
	GameOver tcell.Color `json:"gameOver"`
	White    tcell.Color `json:"white"`
	Yellow   tcell.Color `json:"yellow"`
	Cyan     tcell.Color `json:"cyan"`
	Magenta  tcell.Color `json:"magenta"`
	Blue     tcell.Color `json:"blue"`
	Green    tcell.Color `json:"green"`
}

// ThemeHex is the form themes take in config files
type ThemeHex struct {
	Name     string `json:"name" mapstructure:"name"`
	Empty    string `json:"empty" mapstructure:"empty"`
	Score    string `json:"score" mapstructure:"score"`
	Nick     string `json:"nick" mapstructure:"nick"`
	GameOver string `json:"gameOver" mapstructure:"gameover"`
	White    string `json:"white" mapstructure:"white"`
	Yellow   string `json:"yellow" mapstructure:"yellow"`
	Cyan     string `json:"cyan" mapstructure:"cyan"`
	Magenta  string `json:"magenta" mapstructure:"magenta"`
	Blue     string `json:"blue" mapstructure:"blue"`
	Green    string `json:"green" mapstructure:"green"`
}

// fadeTarget is the color blocks are blended toward once the game is over
var fadeTarget = colorful.Color{R: 0.25, G: 0.25, B: 0.25}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// parseColor accepts a hex triplet, "#0" for the terminal default or
// any color name tcell knows
func parseColor(s string) (tcell.Color, error) {
	switch {
	case s == "" || s == "#0":
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}

	c := tcell.GetColor(s)
	if c == tcell.ColorDefault && s != "default" {
		return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Score.Hex()),
		fmtHex(t.Nick.Hex()),
		fmtHex(t.GameOver.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Yellow.Hex()),
		fmtHex(t.Cyan.Hex()),
		fmtHex(t.Magenta.Hex()),
		fmtHex(t.Blue.Hex()),
		fmtHex(t.Green.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() (Theme, error) {
	fields := []string{t.Empty, t.Score, t.Nick, t.GameOver, t.White, t.Yellow, t.Cyan, t.Magenta, t.Blue, t.Green}
	colors := make([]tcell.Color, len(fields))
	for i, f := range fields {
		c, err := parseColor(f)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", t.Name, err)
		}
		colors[i] = c
	}

	return Theme{
		t.Name,
		colors[0],
		colors[1],
		colors[2],
		colors[3],
		colors[4],
		colors[5],
		colors[6],
		colors[7],
		colors[8],
		colors[9],
	}, nil
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme()
		}
	}

	if want == ThemeBasic.Name {
		return ThemeBasic, nil
	}

	return Theme{}, errors.New("theme: no theme found")
}

// Block returns the color a block is drawn in
func (t Theme) Block(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockWhite:
		return t.White
	case mino.BlockYellow:
		return t.Yellow
	case mino.BlockCyan:
		return t.Cyan
	case mino.BlockMagenta:
		return t.Magenta
	case mino.BlockBlue:
		return t.Blue
	case mino.BlockGreen:
		return t.Green
	default:
		return t.Empty
	}
}

// Faded returns a copy of the theme with the block colors blended toward
// gray by amount, between 0 and 1
func (t Theme) Faded(amount float64) Theme {
	f := t
	f.White = fade(t.White, amount)
	f.Yellow = fade(t.Yellow, amount)
	f.Cyan = fade(t.Cyan, amount)
	f.Magenta = fade(t.Magenta, amount)
	f.Blue = fade(t.Blue, amount)
	f.Green = fade(t.Green, amount)
	return f
}

func fade(c tcell.Color, amount float64) tcell.Color {
	if c.Hex() < 0 {
		return c
	}

	r, g, b := c.RGB()
	faded := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.
		BlendLab(fadeTarget, amount).
		Clamped()
	fr, fg, fb := faded.RGB255()
	return tcell.NewRGBColor(int32(fr), int32(fg), int32(fb))
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.ColorDefault, // Empty
	tcell.ColorDefault, // Score
	tcell.Color247,     // Nick
	tcell.Color160,     // GameOver
	tcell.ColorWhite,   // White
	tcell.ColorYellow,  // Yellow
	tcell.ColorAqua,    // Cyan
	tcell.ColorFuchsia, // Magenta
	tcell.ColorBlue,    // Blue
	tcell.ColorLime,    // Green
}
