package render

import "strings"

const (
	minContentSlides = 3
	wordsPerSlide    = 100
	maxBulletsSlide  = 5
)

// EstimateSlideCount derives a deck size from the amount of source text:
// one content slide per hundred words with a floor of three, plus two
// introduction slides, one conclusion and one references slide.
func EstimateSlideCount(text string) int {
	words := len(strings.Fields(text))
	content := (words + wordsPerSlide - 1) / wordsPerSlide
	if content < minContentSlides {
		content = minContentSlides
	}
	return content + 2 + 1 + 1
}

// BuildSlides flattens structured content into a linear deck: title and
// overview up front, bulleted section slides in document order, then
// summary and references. Long sections spill across multiple slides.
func BuildSlides(c *Content) []Slide {
	var slides []Slide

	subtitle := c.Subject
	if c.Version != "" {
		subtitle = c.Subject + " " + c.Version
	}
	slides = append(slides, Slide{Title: c.Topic, Bullets: []string{subtitle}})

	overview := make([]string, 0, len(c.Sections))
	for _, sec := range c.Sections {
		overview = append(overview, sec.Title)
	}
	if len(overview) > 0 {
		slides = append(slides, Slide{Title: "Overview", Bullets: overview})
	}

	for _, sec := range c.Sections {
		slides = append(slides, sectionSlides(sec)...)
	}

	if c.Summary != "" {
		slides = append(slides, Slide{Title: "Summary", Bullets: splitSentences(c.Summary)})
	}

	if len(c.References) > 0 {
		refs := make([]string, 0, len(c.References))
		for _, ref := range c.References {
			refs = append(refs, formatReference(ref))
		}
		slides = append(slides, Slide{Title: "References", Bullets: refs})
	}

	return slides
}

func sectionSlides(sec Section) []Slide {
	bullets := splitSentences(sec.Body)
	for _, sub := range sec.Subsections {
		bullets = append(bullets, sub.Title)
	}
	if len(bullets) == 0 {
		bullets = []string{sec.Title}
	}

	var slides []Slide
	for start := 0; start < len(bullets); start += maxBulletsSlide {
		end := start + maxBulletsSlide
		if end > len(bullets) {
			end = len(bullets)
		}
		title := sec.Title
		if start > 0 {
			title = sec.Title + " (cont.)"
		}
		slides = append(slides, Slide{Title: title, Bullets: bullets[start:end]})
	}

	var out []Slide
	out = append(out, slides...)
	for _, sub := range sec.Subsections {
		out = append(out, sectionSlides(sub)...)
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ". ") {
		part = strings.TrimSpace(strings.TrimSuffix(part, "."))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
