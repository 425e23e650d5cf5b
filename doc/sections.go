// Package doc splits markdown documents into header-delimited sections
// and locates the section a narration trigger phrase points at.
package doc

import "strings"

// Section is one header-delimited slice of a document.
type Section struct {
	Title string
	Body  string
}

// Text returns the searchable text of the section.
func (s Section) Text() string {
	return s.Title + "\n" + s.Body
}

// Split breaks markdown content into sections at lines starting with
// '#'. Content before the first header becomes a section with an empty
// title so nothing is lost.
func Split(content string) []Section {
	var sections []Section
	var current *Section

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			if current != nil {
				sections = append(sections, *current)
			}
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			current = &Section{Title: title}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &Section{}
		}
		current.Body += line + "\n"
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

// Match finds the first section containing the trigger phrase: verbatim
// first, then at least min(2, significant-word-count) of the phrase's
// words longer than three characters. Returns 0 when nothing matches so
// callers always have a valid scroll target.
func Match(sections []Section, phrase string) int {
	if len(sections) == 0 {
		return 0
	}
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return 0
	}

	lowerPhrase := strings.ToLower(phrase)
	for i, s := range sections {
		if strings.Contains(strings.ToLower(s.Text()), lowerPhrase) {
			return i
		}
	}

	words := significantWords(phrase)
	if len(words) == 0 {
		return 0
	}
	need := 2
	if len(words) < need {
		need = len(words)
	}
	for i, s := range sections {
		text := strings.ToLower(s.Text())
		hits := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				hits++
			}
		}
		if hits >= need {
			return i
		}
	}
	return 0
}

func significantWords(phrase string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		w = strings.Trim(w, ".,!?;:'\"()[]{}")
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}
