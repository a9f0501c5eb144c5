// Package docstring splits free-form function documentation into named sections.
//
// A docstring looks like this:
//
//	adds two numbers together
//
//	Arguments:
//	  - a: the first operand
//	  - b: the second operand
//
//	Returns:
//	  the sum of a and b
//
// Everything before the first section marker becomes the "Description"
// section, joined into a single paragraph. Every marker starts a new named
// section whose lines keep their line structure.
package docstring

import (
	"slices"
	"strings"
	"unicode"
)

// DescriptionSection is the name of the implicit section holding all text before the first marker.
const DescriptionSection = "Description"

// Markers is the set of literals that start a new section when a line begins with one of them.
var Markers = []string{
	"Arguments:", "Args:", "Parameters:",
	"Returns:", "Return:", "Raises:",
	"Example:", "Examples:", "Note:",
	"---", "----",
}

var (
	// ArgumentSections are the section names that describe parameters.
	ArgumentSections = []string{"Arguments", "Args", "Parameters"}
	// ReturnSections are the section names that describe the return value.
	ReturnSections = []string{"Returns", "Return"}
)

// Section is a named block of a docstring.
type Section struct {
	Name    string
	Content string
}

// Sections maps a section name to its content.
type Sections map[string]Section

// Lookup returns the first section present among names.
func (s Sections) Lookup(names ...string) (Section, bool) {
	for _, name := range names {
		if sec, ok := s[name]; ok {
			return sec, true
		}
	}
	return Section{}, false
}

type token struct {
	marker string
	line   string
}

// Parse splits doc into sections. It never fails; absent sections are simply absent keys.
func Parse(doc string) Sections {
	sections := make(Sections)
	if strings.TrimSpace(doc) == "" {
		return sections
	}

	var (
		current     string
		inSection   bool
		content     []string
		description []string
	)

	flush := func() {
		if inSection {
			sections[current] = Section{
				Name:    current,
				Content: strings.TrimSpace(strings.Join(content, "\n")),
			}
			return
		}
		if len(description) > 0 {
			sections[DescriptionSection] = Section{
				Name:    DescriptionSection,
				Content: strings.TrimSpace(strings.Join(description, " ")),
			}
		}
	}

	for tok := range slices.Values(tokenize(doc)) {
		if tok.marker != "" {
			flush()
			current = strings.TrimSuffix(tok.marker, ":")
			inSection = true
			content = content[:0]
			if tok.line != "" {
				content = append(content, tok.line)
			}
			continue
		}
		if !inSection {
			if tok.line != "" {
				description = append(description, tok.line)
			}
			continue
		}
		content = append(content, tok.line)
	}
	flush()

	return sections
}

// tokenize normalizes every line and tags the ones that start a section.
// For marker lines the token carries the text that follows the marker.
func tokenize(doc string) []token {
	lines := strings.Split(doc, "\n")
	tokens := make([]token, 0, len(lines))
	for _, raw := range lines {
		line := cleanLine(raw)
		if marker := matchMarker(line); marker != "" {
			tokens = append(tokens, token{
				marker: marker,
				line:   strings.TrimSpace(strings.TrimPrefix(line, marker)),
			})
			continue
		}
		tokens = append(tokens, token{line: line})
	}
	return tokens
}

func matchMarker(line string) string {
	var found string
	for _, marker := range Markers {
		if strings.HasPrefix(line, marker) && len(marker) > len(found) {
			found = marker
		}
	}
	return found
}

// cleanLine trims the line and removes a leading "*" or "-" bullet.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if len(line) < 2 || (line[0] != '*' && line[0] != '-') {
		return line
	}
	if r := rune(line[1]); unicode.IsSpace(r) {
		return strings.TrimSpace(line[1:])
	}
	return line
}
