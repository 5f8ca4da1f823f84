package domain

// ThemeName identifies one of the theme states.
type ThemeName string

// Theme names.
const (
	ThemeLight    ThemeName = "light"
	ThemeDark     ThemeName = "dark"
	ThemeRomantic ThemeName = "romantic"
	ThemeAdaptive ThemeName = "adaptive"
)

// Valid reports whether n is a known theme.
func (n ThemeName) Valid() bool {
	switch n {
	case ThemeLight, ThemeDark, ThemeRomantic, ThemeAdaptive:
		return true
	}
	return false
}

// Palette is the full colour set of a theme.
type Palette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Border        string `json:"border"`
	Success       string `json:"success"`
	Warning       string `json:"warning"`
	Error         string `json:"error"`
	Paper         string `json:"paper"`
	PaperTexture  string `json:"paperTexture"`
	Highlight     string `json:"highlight"`
	Annotation    string `json:"annotation"`
}

// ColorOverrides replace individual palette entries in adaptive mode.
// Empty fields keep the base colour.
type ColorOverrides struct {
	Primary    string `json:"primary,omitempty" validate:"omitempty,iscolor"`
	Secondary  string `json:"secondary,omitempty" validate:"omitempty,iscolor"`
	Accent     string `json:"accent,omitempty" validate:"omitempty,iscolor"`
	Background string `json:"background,omitempty" validate:"omitempty,iscolor"`
	Surface    string `json:"surface,omitempty" validate:"omitempty,iscolor"`
	Text       string `json:"text,omitempty" validate:"omitempty,iscolor"`
	Paper      string `json:"paper,omitempty" validate:"omitempty,iscolor"`
}

// With returns p with the non-empty overrides applied.
func (p Palette) With(o ColorOverrides) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Primary, o.Primary)
	set(&p.Secondary, o.Secondary)
	set(&p.Accent, o.Accent)
	set(&p.Background, o.Background)
	set(&p.Surface, o.Surface)
	set(&p.Text, o.Text)
	set(&p.Paper, o.Paper)
	return p
}

// AdaptiveReaderColors is what the reader emits on open and after every page commit.
// It is a fixed set today; a content-derived source can replace it behind the same seam.
var AdaptiveReaderColors = ColorOverrides{
	Primary:    "#8B5A2B",
	Accent:     "#E91E63",
	Background: "#FFF8E7",
}

// LightPalette is the default theme.
var LightPalette = Palette{
	Primary:       "#8B5A2B",
	Secondary:     "#D4AF37",
	Accent:        "#E91E63",
	Background:    "#FFF8E7",
	Surface:       "#FFFFFF",
	Text:          "#2C1810",
	TextSecondary: "#6B4423",
	Border:        "#E8DCC0",
	Success:       "#4CAF50",
	Warning:       "#FF9800",
	Error:         "#F44336",
	Paper:         "#FFFEF7",
	PaperTexture:  "#F9F6ED",
	Highlight:     "#FFE082",
	Annotation:    "#FFB74D",
}

// DarkPalette is the night theme.
var DarkPalette = Palette{
	Primary:       "#D4AF37",
	Secondary:     "#8B5A2B",
	Accent:        "#FF4081",
	Background:    "#1A1611",
	Surface:       "#2D2520",
	Text:          "#F5E6D3",
	TextSecondary: "#C4A572",
	Border:        "#3D342B",
	Success:       "#66BB6A",
	Warning:       "#FFB74D",
	Error:         "#EF5350",
	Paper:         "#252016",
	PaperTexture:  "#2A2318",
	Highlight:     "#FFF176",
	Annotation:    "#FFB74D",
}

// RomanticPalette is the rose theme.
var RomanticPalette = Palette{
	Primary:       "#8E4162",
	Secondary:     "#D4AF37",
	Accent:        "#E91E63",
	Background:    "#FDF2F8",
	Surface:       "#FFFFFF",
	Text:          "#4A1E3A",
	TextSecondary: "#8E4162",
	Border:        "#F3D5E7",
	Success:       "#10B981",
	Warning:       "#F59E0B",
	Error:         "#EF4444",
	Paper:         "#FFFBFD",
	PaperTexture:  "#FEF7FA",
	Highlight:     "#F9A8D4",
	Annotation:    "#EC4899",
}

// PaletteFor returns the base palette of a named theme. Adaptive builds on light.
func PaletteFor(name ThemeName) Palette {
	switch name {
	case ThemeDark:
		return DarkPalette
	case ThemeRomantic:
		return RomanticPalette
	default:
		return LightPalette
	}
}
