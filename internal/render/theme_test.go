package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectThemeForSubject(t *testing.T) {
	tests := []struct {
		subject  string
		wantType string
	}{
		{"Computer Science", ThemeSTEM},
		{"Data Structures and Algorithms", ThemeSTEM},
		{"Organic Chemistry", ThemeSciences},
		{"World History", ThemeHumanities},
		{"Business Economics", ThemeBusiness},
		{"Underwater Basket Weaving", ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got := SelectThemeForSubject(tt.subject)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

func TestSelectThemeForSubjectKeywordPriority(t *testing.T) {
	// "software" appears before "business" in the keyword table.
	got := SelectThemeForSubject("Business Software")
	assert.Equal(t, ThemeSTEM, got.Type)
}

func TestLookupTheme(t *testing.T) {
	byTag, ok := LookupTheme("dark")
	require.True(t, ok)
	assert.Equal(t, "Dark Mode", byTag.Name)

	byName, ok := LookupTheme("corporate blue")
	require.True(t, ok)
	assert.Equal(t, ThemeBusiness, byName.Type)

	_, ok = LookupTheme("neon")
	assert.False(t, ok)
}

func TestListThemesStableOrder(t *testing.T) {
	first := ListThemes()
	second := ListThemes()

	require.Len(t, first, len(Themes))
	assert.Equal(t, first, second)
	assert.Equal(t, ThemeSTEM, first[0].Type)
}

func TestThemeRecord(t *testing.T) {
	rec := Themes[ThemeSciences].Record("auto")
	assert.Equal(t, "Scientific Green", rec.Name)
	assert.Equal(t, "#2D5A27", rec.Primary)
	assert.Equal(t, "auto", rec.Selection)
}
