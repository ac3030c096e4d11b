package language

import (
	"strings"

	"golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Word forms that may appear in a video title
}

var languages = []entry{
	{"es", "Spanish", []string{"español", "castellano"}},
	{"en", "English", []string{"english"}},
	{"fr", "French", []string{"français", "french"}},
	{"de", "German", []string{"deutsch", "german"}},
	{"it", "Italian", []string{"italiano", "italian"}},
	{"pt", "Portuguese", []string{"português", "portuguese"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"zh", "Chinese", []string{"chinese"}},
	{"ru", "Russian", []string{"russian"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"nl", "Dutch", []string{"nederlands", "dutch"}},
	{"pl", "Polish", []string{"polski", "polish"}},
	{"sv", "Swedish", []string{"svenska", "swedish"}},
	{"da", "Danish", []string{"dansk", "danish"}},
	{"no", "Norwegian", []string{"norsk", "norwegian"}},
	{"fi", "Finnish", []string{"suomi", "finnish"}},
}

var byCode2 map[string]*entry

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	for i := range languages {
		byCode2[languages[i].code2] = &languages[i]
	}
}

// BaseTag reduces a BCP 47 tag to its primary language subtag, so "es-419"
// and "es-ES" both become "es". Unparseable tags fall back to a plain split
// on the first hyphen.
func BaseTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if parsed, err := language.Parse(tag); err == nil {
		if base, conf := parsed.Base(); conf != language.No {
			return base.String()
		}
	}
	if idx := strings.IndexByte(tag, '-'); idx > 0 {
		return tag[:idx]
	}
	return tag
}

// HasPrefix reports whether a raw language tag starts with the given code.
// This is a deliberate plain prefix check rather than a BCP 47 match: the
// metadata source tags tracks with values like "es", "es-419", or "es-US",
// and all of them should satisfy a preference for "es".
func HasPrefix(tag, code string) bool {
	if code == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(tag)), strings.ToLower(code))
}

// DisplayName returns a human-readable name for any recognized tag.
// Returns "Unknown" for empty input and the uppercased tag otherwise.
func DisplayName(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "Unknown"
	}
	if e, ok := byCode2[BaseTag(trimmed)]; ok {
		return e.display
	}
	return strings.ToUpper(trimmed)
}

// TitleHints returns word forms of the given language that may show up in a
// video title (e.g. "español", "castellano" for "es"). Used to infer the
// audio language when no track carries an explicit tag.
func TitleHints(code string) []string {
	e, ok := byCode2[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	out := make([]string, len(e.words))
	copy(out, e.words)
	return out
}

// TitleMentions reports whether the title contains any word form of the
// given language, case-insensitively.
func TitleMentions(title, code string) bool {
	lowered := strings.ToLower(title)
	for _, word := range TitleHints(code) {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
