package domain

// PageTransition names the page-turn presentation.
type PageTransition string

// Page transitions.
const (
	TransitionSlide PageTransition = "slide"
	TransitionFade  PageTransition = "fade"
	TransitionCurl  PageTransition = "curl"
)

// Valid reports whether t is a known transition.
func (t PageTransition) Valid() bool {
	switch t {
	case TransitionSlide, TransitionFade, TransitionCurl:
		return true
	}
	return false
}

// Reader setting bounds.
const (
	MinFontSize   = 12
	MaxFontSize   = 32
	MinBrightness = 0
	MaxBrightness = 100
	MinLineHeight = 1.0
	MaxLineHeight = 3.0
	MinPageMargin = 0
	MaxPageMargin = 96
)

// ReaderSettings are process-wide reading preferences.
type ReaderSettings struct {
	FontSize       int            `json:"fontSize"`
	FontFamily     string         `json:"fontFamily"`
	LineHeight     float64        `json:"lineHeight"`
	PageMargin     int            `json:"pageMargin"`
	JustifyText    bool           `json:"justifyText"`
	NightMode      bool           `json:"nightMode"`
	Sepia          bool           `json:"sepia"`
	Brightness     int            `json:"brightness"`
	PageTransition PageTransition `json:"pageTransition"`
}

// DefaultReaderSettings returns the settings a fresh install starts with.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		FontSize:       16,
		FontFamily:     "Crimson Text",
		LineHeight:     1.6,
		PageMargin:     24,
		JustifyText:    true,
		Brightness:     100,
		PageTransition: TransitionCurl,
	}
}

// SettingsPatch is a shallow partial update of ReaderSettings.
type SettingsPatch struct {
	FontSize       *int            `json:"fontSize,omitempty"`
	FontFamily     *string         `json:"fontFamily,omitempty"`
	LineHeight     *float64        `json:"lineHeight,omitempty"`
	PageMargin     *int            `json:"pageMargin,omitempty"`
	JustifyText    *bool           `json:"justifyText,omitempty"`
	NightMode      *bool           `json:"nightMode,omitempty"`
	Sepia          *bool           `json:"sepia,omitempty"`
	Brightness     *int            `json:"brightness,omitempty"`
	PageTransition *PageTransition `json:"pageTransition,omitempty"`
}

// Merge applies p on top of s and clamps every numeric field into its range.
// An unknown transition or a blank font family leaves the current value in place.
func (s ReaderSettings) Merge(p SettingsPatch) ReaderSettings {
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.FontFamily != nil && *p.FontFamily != "" {
		s.FontFamily = *p.FontFamily
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.PageMargin != nil {
		s.PageMargin = *p.PageMargin
	}
	if p.JustifyText != nil {
		s.JustifyText = *p.JustifyText
	}
	if p.NightMode != nil {
		s.NightMode = *p.NightMode
	}
	if p.Sepia != nil {
		s.Sepia = *p.Sepia
	}
	if p.Brightness != nil {
		s.Brightness = *p.Brightness
	}
	if p.PageTransition != nil && p.PageTransition.Valid() {
		s.PageTransition = *p.PageTransition
	}
	return s.Clamped()
}

// Clamped returns s with every bounded field forced into range.
func (s ReaderSettings) Clamped() ReaderSettings {
	s.FontSize = min(max(s.FontSize, MinFontSize), MaxFontSize)
	s.Brightness = min(max(s.Brightness, MinBrightness), MaxBrightness)
	s.LineHeight = min(max(s.LineHeight, MinLineHeight), MaxLineHeight)
	s.PageMargin = min(max(s.PageMargin, MinPageMargin), MaxPageMargin)
	if !s.PageTransition.Valid() {
		s.PageTransition = TransitionCurl
	}
	return s
}
