package pdf

import "regexp"

// urlPattern matches http(s) links up to the next whitespace. The class covers
// Unicode separators too, not only ASCII blanks.
var urlPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{FEFF}]+`)

// ExtractURLs returns every link in text in order of appearance, duplicates
// included. The result is never nil.
func ExtractURLs(text string) []string {
	found := urlPattern.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}
