// Package bloom carries the Bloom's Taxonomy tables used to classify quiz
// questions and Course Learning Outcomes by cognitive level.
package bloom

import (
	"regexp"
	"strings"
)

// Level is a Bloom's Taxonomy cognitive level.
type Level string

const (
	Remember   Level = "Remember"
	Understand Level = "Understand"
	Apply      Level = "Apply"
	Analyze    Level = "Analyze"
	Evaluate   Level = "Evaluate"
	Create     Level = "Create"
)

// Order lists the levels from lowest to highest cognitive complexity.
var Order = []Level{Remember, Understand, Apply, Analyze, Evaluate, Create}

// Keywords maps each level to its action verbs.
var Keywords = map[Level][]string{
	Remember: {
		"define", "list", "label", "name", "identify", "recall", "state",
		"recognize", "describe", "match", "select", "reproduce",
	},
	Understand: {
		"explain", "describe", "summarize", "interpret", "compare",
		"contrast", "classify", "discuss", "distinguish", "illustrate",
	},
	Apply: {
		"apply", "demonstrate", "solve", "use", "execute", "implement",
		"calculate", "construct", "complete", "practice",
	},
	Analyze: {
		"analyze", "examine", "compare", "categorize", "differentiate",
		"investigate", "organize", "deconstruct", "attribute", "outline",
	},
	Evaluate: {
		"evaluate", "assess", "justify", "critique", "judge", "defend",
		"recommend", "appraise", "argue", "support",
	},
	Create: {
		"design", "create", "develop", "formulate", "construct", "propose",
		"generate", "compose", "plan", "produce", "invent",
	},
}

// Descriptions maps each level to its short display text.
var Descriptions = map[Level]string{
	Remember:   "Recall facts and basic concepts",
	Understand: "Explain ideas or concepts",
	Apply:      "Use information in new situations",
	Analyze:    "Draw connections among ideas",
	Evaluate:   "Justify a stand or decision",
	Create:     "Produce new or original work",
}

// ParseLevel matches a string against the known levels, case-insensitively.
func ParseLevel(s string) (Level, bool) {
	for _, level := range Order {
		if strings.EqualFold(s, string(level)) {
			return level, true
		}
	}
	return "", false
}

// ActionVerb returns a representative action verb for a level. Unknown
// levels fall back to "apply".
func ActionVerb(level Level) string {
	words, ok := Keywords[level]
	if !ok || len(words) == 0 {
		return "apply"
	}
	return words[0]
}

// Identify scans text for action verbs and returns the first matching level
// in complexity order, or false when nothing matches. Verbs must appear as
// whole words.
func Identify(text string) (Level, bool) {
	lower := strings.ToLower(text)
	for _, level := range Order {
		for _, keyword := range Keywords[level] {
			if !strings.Contains(lower, keyword) {
				continue
			}
			if regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`).MatchString(lower) {
				return level, true
			}
		}
	}
	return "", false
}

// OrderNames returns the level names in complexity order.
func OrderNames() []string {
	out := make([]string, len(Order))
	for i, level := range Order {
		out[i] = string(level)
	}
	return out
}

// AllKeywords returns the keyword table keyed by level name, for API
// consumption.
func AllKeywords() map[string][]string {
	out := make(map[string][]string, len(Keywords))
	for level, words := range Keywords {
		out[string(level)] = append([]string(nil), words...)
	}
	return out
}

// AllDescriptions returns level descriptions keyed by level name.
func AllDescriptions() map[string]string {
	out := make(map[string]string, len(Descriptions))
	for level, desc := range Descriptions {
		out[string(level)] = desc
	}
	return out
}
