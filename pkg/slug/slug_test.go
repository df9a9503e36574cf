package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Data Structures and Algorithms", "data-structures-and-algorithms"},
		{"The French Revolution (1789-1799)", "the-french-revolution-1789-1799"},
		{"Alkene Reactions & Mechanisms", "alkene-reactions-mechanisms"},
		{"Machine   Learning", "machine-learning"},
		{"Binary Search Trees", "binary-search-trees"},
		{"C++ Templates", "c-templates"},
		{"  Intro to AI  ", "intro-to-ai"},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tc := range cases {
		got, err := Sanitize(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got)
		assert.True(t, IsValid(got), "sanitized output must validate: %q", got)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	_, err := Sanitize("")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = Sanitize("!!! ???")
	assert.ErrorIs(t, err, ErrEmptySlug)
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "abc", "abc-def", "a1-b2-c3", "2024"}
	for _, s := range valid {
		assert.True(t, IsValid(s), s)
	}

	invalid := []string{"", "-abc", "abc-", "ab--cd", "Abc", "a b", "a_b", "école"}
	for _, s := range invalid {
		assert.False(t, IsValid(s), s)
	}
}
