package util

import "regexp"

// urlPattern matches an http(s) URL embedded in free text. The match stops
// before whitespace or a closing parenthesis so URLs pasted inside notes or
// markdown links survive intact. Compiled once; shared read-only.
var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// ExtractURL returns the first URL embedded in line, if any.
func ExtractURL(line string) (string, bool) {
	m := urlPattern.FindString(line)
	return m, m != ""
}
