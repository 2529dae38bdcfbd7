package manifest

import "strings"

// Scanner is the built-in EventSource. It splits manifest text into section,
// key-value, and error events with 1-based line/column positions.
//
// Lexical rules: blank lines and lines starting with ';' or '#' are skipped,
// leading whitespace is cosmetic, "[name]" starts a section, and anything
// else must be a "key = value" pair whose value may be wrapped in double
// quotes. The scanner never aborts; malformed lines become error events and
// the parser decides what to do with them.
type Scanner struct {
	lines []string
	next  int
}

// NewScanner creates a Scanner over the given manifest text.
func NewScanner(text string) *Scanner {
	return &Scanner{lines: strings.Split(text, "\n")}
}

// Next returns the next event in the stream, or false when exhausted.
func (s *Scanner) Next() (Event, bool) {
	for s.next < len(s.lines) {
		raw := s.lines[s.next]
		s.next++

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed[0] == ';' || trimmed[0] == '#' {
			continue
		}

		pos := Position{
			Line: s.next,
			Col:  len(raw) - len(strings.TrimLeft(raw, " \t")) + 1,
		}

		if trimmed[0] == '[' {
			return s.scanSection(trimmed, pos), true
		}
		return s.scanKeyValue(trimmed, pos), true
	}
	return Event{}, false
}

func (s *Scanner) scanSection(line string, pos Position) Event {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return Event{Kind: EventError, Msg: "unterminated section header", Pos: pos}
	}
	if rest := strings.TrimSpace(line[end+1:]); rest != "" {
		return Event{Kind: EventError, Msg: "unexpected text after section header", Pos: pos}
	}
	name := strings.TrimSpace(line[1:end])
	if name == "" {
		return Event{Kind: EventError, Msg: "empty section name", Pos: pos}
	}
	return Event{Kind: EventSection, Name: name, Pos: pos}
}

func (s *Scanner) scanKeyValue(line string, pos Position) Event {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return Event{Kind: EventError, Msg: "expected 'key = value'", Pos: pos}
	}
	key := unquote(strings.TrimSpace(line[:eq]))
	if key == "" {
		return Event{Kind: EventError, Msg: "empty key", Pos: pos}
	}
	value := unquote(strings.TrimSpace(line[eq+1:]))
	return Event{Kind: EventKeyValue, Key: key, Value: value, Pos: pos}
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
