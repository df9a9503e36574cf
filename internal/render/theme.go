package render

import (
	"strings"

	"github.com/lumora-labs/coursecraft-api/internal/content"
)

// ThemeDefinition is one presentation color scheme.
type ThemeDefinition struct {
	Type        string
	Name        string
	Description string
	Primary     string
	Secondary   string
	Accent      string
	Text        string
	Background  string
}

// Theme type tags.
const (
	ThemeSTEM         = "stem"
	ThemeSciences     = "sciences"
	ThemeHumanities   = "humanities"
	ThemeBusiness     = "business"
	ThemeDefault      = "default"
	ThemeProfessional = "professional"
	ThemeVibrant      = "vibrant"
	ThemeDark         = "dark"
)

// Themes is the immutable theme catalogue.
var Themes = map[string]ThemeDefinition{
	ThemeSTEM: {
		Type: ThemeSTEM, Name: "Modern Tech Blue",
		Description: "Clean, modern design for STEM subjects",
		Primary:     "#2E5C8A", Secondary: "#4A90E2", Accent: "#FF6B35",
		Text: "#333333", Background: "#FFFFFF",
	},
	ThemeSciences: {
		Type: ThemeSciences, Name: "Scientific Green",
		Description: "Professional theme for natural sciences",
		Primary:     "#2D5A27", Secondary: "#4A8C41", Accent: "#FFD700",
		Text: "#333333", Background: "#FFFFFF",
	},
	ThemeHumanities: {
		Type: ThemeHumanities, Name: "Classic Warm",
		Description: "Elegant theme for humanities and arts",
		Primary:     "#8B4513", Secondary: "#CD853F", Accent: "#DAA520",
		Text: "#333333", Background: "#FFF8F0",
	},
	ThemeBusiness: {
		Type: ThemeBusiness, Name: "Corporate Blue",
		Description: "Professional theme for business subjects",
		Primary:     "#1C3D5A", Secondary: "#4682B4", Accent: "#FF8C00",
		Text: "#333333", Background: "#FFFFFF",
	},
	ThemeDefault: {
		Type: ThemeDefault, Name: "Modern Minimalist",
		Description: "Clean, universal design",
		Primary:     "#2E5C8A", Secondary: "#6B7B8C", Accent: "#E74C3C",
		Text: "#333333", Background: "#FFFFFF",
	},
	ThemeProfessional: {
		Type: ThemeProfessional, Name: "Professional Gray",
		Description: "Neutral professional appearance",
		Primary:     "#34495E", Secondary: "#7F8C8D", Accent: "#3498DB",
		Text: "#2C3E50", Background: "#FFFFFF",
	},
	ThemeVibrant: {
		Type: ThemeVibrant, Name: "Vibrant Energy",
		Description: "Bold, energetic colors",
		Primary:     "#E74C3C", Secondary: "#9B59B6", Accent: "#F39C12",
		Text: "#2C3E50", Background: "#FFFFFF",
	},
	ThemeDark: {
		Type: ThemeDark, Name: "Dark Mode",
		Description: "Dark background with light text",
		Primary:     "#3498DB", Secondary: "#2ECC71", Accent: "#F1C40F",
		Text: "#ECF0F1", Background: "#2C3E50",
	},
}

type subjectKeyword struct {
	keyword   string
	themeType string
}

// subjectThemeKeywords routes subject-name keywords to a theme type.
// Earlier entries win when a name matches several keywords.
var subjectThemeKeywords = []subjectKeyword{
	{"computer science", ThemeSTEM},
	{"programming", ThemeSTEM},
	{"data structures", ThemeSTEM},
	{"algorithms", ThemeSTEM},
	{"mathematics", ThemeSTEM},
	{"engineering", ThemeSTEM},
	{"technology", ThemeSTEM},
	{"software", ThemeSTEM},

	{"biology", ThemeSciences},
	{"chemistry", ThemeSciences},
	{"physics", ThemeSciences},
	{"environmental", ThemeSciences},
	{"ecology", ThemeSciences},
	{"medicine", ThemeSciences},
	{"health", ThemeSciences},

	{"history", ThemeHumanities},
	{"literature", ThemeHumanities},
	{"philosophy", ThemeHumanities},
	{"art", ThemeHumanities},
	{"music", ThemeHumanities},
	{"languages", ThemeHumanities},
	{"culture", ThemeHumanities},

	{"business", ThemeBusiness},
	{"economics", ThemeBusiness},
	{"finance", ThemeBusiness},
	{"management", ThemeBusiness},
	{"marketing", ThemeBusiness},
	{"accounting", ThemeBusiness},
}

// SelectThemeForSubject picks a theme by scanning the subject name for
// known keywords, falling back to the default theme.
func SelectThemeForSubject(subject string) ThemeDefinition {
	lower := strings.ToLower(subject)
	for _, entry := range subjectThemeKeywords {
		if strings.Contains(lower, entry.keyword) {
			return Themes[entry.themeType]
		}
	}
	return Themes[ThemeDefault]
}

// LookupTheme resolves an explicit theme request by type tag or display
// name, case-insensitively. The second return is false on no match.
func LookupTheme(name string) (ThemeDefinition, bool) {
	lower := strings.ToLower(name)
	if def, ok := Themes[lower]; ok {
		return def, true
	}
	for _, def := range Themes {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
	}
	return ThemeDefinition{}, false
}

// Record converts a definition into the form stored in material
// metadata. Selection says how the theme was chosen ("auto" or
// "explicit").
func (d ThemeDefinition) Record(selection string) *content.Theme {
	return &content.Theme{
		Type:      d.Type,
		Name:      d.Name,
		Primary:   d.Primary,
		Secondary: d.Secondary,
		Accent:    d.Accent,
		Selection: selection,
	}
}

// ListThemes returns the catalogue in a stable order.
func ListThemes() []ThemeDefinition {
	order := []string{
		ThemeSTEM, ThemeSciences, ThemeHumanities, ThemeBusiness,
		ThemeDefault, ThemeProfessional, ThemeVibrant, ThemeDark,
	}
	out := make([]ThemeDefinition, 0, len(order))
	for _, key := range order {
		out = append(out, Themes[key])
	}
	return out
}
