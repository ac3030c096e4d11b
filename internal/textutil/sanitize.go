package textutil

import "strings"

// fileNameReplacer removes characters that are invalid in filenames on at
// least one supported platform.
var fileNameReplacer = strings.NewReplacer(
	"\\", "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName strips filesystem-unsafe characters from a title and
// collapses every run of whitespace to a single space. The result carries no
// leading or trailing whitespace.
func SanitizeFileName(name string) string {
	cleaned := fileNameReplacer.Replace(name)
	return strings.Join(strings.Fields(cleaned), " ")
}
