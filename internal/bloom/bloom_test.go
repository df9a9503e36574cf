package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify(t *testing.T) {
	cases := []struct {
		text  string
		level Level
	}{
		{"Define the term binary search tree", Remember},
		{"Explain how rotations rebalance an AVL tree", Understand},
		{"Solve the recurrence for merge sort", Apply},
		{"Analyze the time complexity of deletion", Analyze},
		{"Justify your choice of hashing strategy", Evaluate},
		{"Propose a new indexing scheme", Create},
	}
	for _, tc := range cases {
		level, ok := Identify(tc.text)
		assert.True(t, ok, tc.text)
		assert.Equal(t, tc.level, level, tc.text)
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	_, ok := Identify("What is the answer?")
	assert.False(t, ok)

	// Substrings must not match: "decode" contains no whole keyword.
	_, ok = Identify("decodes quickly")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("analyze")
	assert.True(t, ok)
	assert.Equal(t, Analyze, level)

	_, ok = ParseLevel("memorize")
	assert.False(t, ok)
}

func TestTablesComplete(t *testing.T) {
	for _, level := range Order {
		assert.NotEmpty(t, Keywords[level], string(level))
		assert.NotEmpty(t, Descriptions[level], string(level))
	}
	assert.Len(t, AllKeywords(), len(Order))
	assert.Len(t, AllDescriptions(), len(Order))
}
