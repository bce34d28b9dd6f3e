package install

import "strings"

// Markers delimit the toolkit-owned region inside a user-owned file.
type Markers struct {
	Begin string
	End   string
}

// EnvrcMarkers delimit the toolkit section of the target's .envrc.
var EnvrcMarkers = Markers{
	Begin: "# === BEGIN Multi-Agent Workflow Kit ===",
	End:   "# === END Multi-Agent Workflow Kit ===",
}

// Wrap surrounds fragment with the markers. Trailing whitespace on the fragment
// is dropped so repeated wraps of the same fragment are byte-identical.
func (m Markers) Wrap(fragment string) string {
	body := strings.TrimRight(fragment, " \t\r\n")
	return m.Begin + "\n" + body + "\n" + m.End + "\n"
}

// HasRegion reports whether text contains a complete Begin...End region.
func (m Markers) HasRegion(text string) bool {
	_, _, ok := m.locate(text)
	return ok
}

// locate returns the byte span of the first complete region, including both
// markers and a single newline following the end marker. Each end marker pairs
// with the nearest begin marker before it, so a stray begin marker earlier in
// the file never widens the region.
func (m Markers) locate(text string) (int, int, bool) {
	if m.Begin == "" || m.End == "" {
		return 0, 0, false
	}
	from := 0
	for {
		rel := strings.Index(text[from:], m.End)
		if rel < 0 {
			return 0, 0, false
		}
		endAt := from + rel
		start := strings.LastIndex(text[:endAt], m.Begin)
		if start < 0 {
			from = endAt + len(m.End)
			continue
		}
		end := endAt + len(m.End)
		if end < len(text) && text[end] == '\n' {
			end++
		}
		return start, end, true
	}
}

// ReplaceRegion replaces the first marked region in text, markers included,
// with replacement. Bytes before and after the region are returned unchanged.
// It reports false and returns text as-is when no complete region exists.
func ReplaceRegion(text string, m Markers, replacement string) (string, bool) {
	start, end, ok := m.locate(text)
	if !ok {
		return text, false
	}
	return text[:start] + replacement + text[end:], true
}
