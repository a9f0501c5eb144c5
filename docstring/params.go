package docstring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParameterDescriptions extracts "name: description" pairs from the content of an
// arguments section.
//
// A description starts after the label and any whitespace that follows it, and
// runs until the next "word:" token or the end of the text. Descriptions that
// span several lines are kept whole only as long as none of the continuation
// lines contains a "word:" token; there is no per-entry indentation handling.
// When a name is listed more than once the last entry wins.
func ParameterDescriptions(content string) map[string]string {
	result := make(map[string]string)

	pos := 0
	for pos < len(content) {
		start, colon, ok := nextLabel(content, pos)
		if !ok {
			break
		}
		name := content[start:colon]

		descStart := colon + 1
		for descStart < len(content) {
			r, size := utf8.DecodeRuneInString(content[descStart:])
			if !unicode.IsSpace(r) {
				break
			}
			descStart += size
		}

		if descStart >= len(content) {
			// nothing but whitespace after the label
			result[name] = ""
			break
		}

		// the description holds at least one rune
		_, size := utf8.DecodeRuneInString(content[descStart:])
		end := len(content)
		for i := descStart + size; i < len(content); {
			if labelAt(content, i) {
				end = i
				break
			}
			_, sz := utf8.DecodeRuneInString(content[i:])
			i += sz
		}

		result[strings.TrimSpace(name)] = strings.TrimSpace(content[descStart:end])
		pos = end
	}
	return result
}

// nextLabel finds the leftmost "word:" at or after pos that is followed by at least one more character.
func nextLabel(s string, pos int) (start, colon int, ok bool) {
	for i := pos; i < len(s); {
		if end, found := wordColon(s, i); found && end+1 < len(s) {
			return i, end, true
		}
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
	}
	return 0, 0, false
}

func labelAt(s string, i int) bool {
	_, found := wordColon(s, i)
	return found
}

// wordColon reports whether a run of word characters starting at i is directly followed by a colon.
// It returns the index of that colon.
func wordColon(s string, i int) (int, bool) {
	j := i
	for j < len(s) {
		r, sz := utf8.DecodeRuneInString(s[j:])
		if !isWordRune(r) {
			break
		}
		j += sz
	}
	if j == i || j >= len(s) || s[j] != ':' {
		return 0, false
	}
	return j, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
