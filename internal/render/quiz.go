package render

import (
	"fmt"
	"strings"

	"github.com/lumora-labs/coursecraft-api/internal/bloom"
)

const defaultMarksPerQuestion = 10

// QuestionSlot is one planned question before its prompt is written:
// which Bloom level it targets and which CLO it assesses.
type QuestionSlot struct {
	Number    int
	Level     bloom.Level
	CLOIndex  int
	CLONumber int
}

// DistributeQuestions spreads a question count across Bloom levels and
// CLOs. Levels split the total evenly with the remainder going to the
// higher levels; CLOs rotate round-robin across the whole quiz. With a
// single level every question uses it. At least one CLO is required.
func DistributeQuestions(total int, levels []bloom.Level, cloCount int) ([]QuestionSlot, error) {
	if cloCount == 0 {
		return nil, fmt.Errorf("at least one CLO is required")
	}
	if len(levels) == 0 {
		levels = []bloom.Level{bloom.Apply}
	}

	slots := make([]QuestionSlot, 0, total)

	if len(levels) > 1 {
		base := total / len(levels)
		remainder := total % len(levels)

		idx := 0
		for li, level := range levels {
			count := base
			if li >= len(levels)-remainder {
				count++
			}
			for i := 0; i < count; i++ {
				cloIdx := idx % cloCount
				slots = append(slots, QuestionSlot{
					Number:    idx + 1,
					Level:     level,
					CLOIndex:  cloIdx,
					CLONumber: cloIdx + 1,
				})
				idx++
			}
		}
		return slots, nil
	}

	for idx := 0; idx < total; idx++ {
		cloIdx := idx % cloCount
		slots = append(slots, QuestionSlot{
			Number:    idx + 1,
			Level:     levels[0],
			CLOIndex:  cloIdx,
			CLONumber: cloIdx + 1,
		})
	}
	return slots, nil
}

// BuildQuestions expands content without explicit questions into
// placeholder question templates from its CLO and complexity settings.
// Content that already carries questions is returned untouched.
func BuildQuestions(c *Content) error {
	if len(c.Questions) > 0 {
		return nil
	}

	total := c.TotalQuestions
	if total == 0 {
		total = len(c.CLOs) * 2
	}
	if total == 0 {
		total = 5
	}

	levels := make([]bloom.Level, 0, len(c.ComplexityLevels))
	for _, name := range c.ComplexityLevels {
		if level, ok := bloom.ParseLevel(name); ok {
			levels = append(levels, level)
		}
	}

	slots, err := DistributeQuestions(total, levels, len(c.CLOs))
	if err != nil {
		return err
	}

	qType := ""
	if len(c.QuestionTypes) > 0 {
		qType = c.QuestionTypes[0]
	}

	c.Questions = make([]Question, 0, len(slots))
	for _, slot := range slots {
		verb := capitalize(bloom.ActionVerb(slot.Level))
		c.Questions = append(c.Questions, Question{
			Number:    slot.Number,
			Prompt:    fmt.Sprintf("[%s - Question about %s aligned to CLO %d]", verb, c.Topic, slot.CLONumber),
			Level:     string(slot.Level),
			CLONumber: slot.CLONumber,
			Marks:     defaultMarksPerQuestion,
			Type:      qType,
		})
	}
	if c.TotalMarks == 0 {
		c.TotalMarks = len(c.Questions) * defaultMarksPerQuestion
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RubricCriterion is one grading criterion with its mark share.
type RubricCriterion struct {
	Description string `json:"description"`
	Marks       int    `json:"marks"`
}

// BuildRubric splits a question's marks across grading criteria, the
// remainder going to the earlier criteria.
func BuildRubric(totalMarks, criteria int) []RubricCriterion {
	if criteria <= 0 {
		criteria = 3
	}
	base := totalMarks / criteria
	remainder := totalMarks % criteria

	out := make([]RubricCriterion, 0, criteria)
	for i := 0; i < criteria; i++ {
		marks := base
		if i < remainder {
			marks++
		}
		out = append(out, RubricCriterion{
			Description: fmt.Sprintf("[Criterion %d description]", i+1),
			Marks:       marks,
		})
	}
	return out
}
