package speech

import "strings"

// Voice describes one installed synthesis voice as the platform reports it.
// Lang tags in the wild mix '-' and '_' separators.
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// commonNames maps primary language subtags to the language's common English
// name, used as the last-resort match against voice display names.
var commonNames = map[string]string{
	"en": "english",
	"hi": "hindi",
	"te": "telugu",
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
}

func primarySubtag(tag string) string {
	t := normalizeTag(tag)
	if i := strings.Index(t, "-"); i > 0 {
		return t[:i]
	}
	return t
}

// SelectVoice picks the best voice for a locale, in priority order: exact
// locale match, primary-language-subtag match, then display name containing
// the language's common English name. ok is false when nothing matches; the
// caller decides whether to degrade to the default voice or to relay audio.
func SelectVoice(voices []Voice, langTag string) (Voice, bool) {
	want := normalizeTag(langTag)
	for _, v := range voices {
		if normalizeTag(v.Lang) == want {
			return v, true
		}
	}
	sub := primarySubtag(langTag)
	for _, v := range voices {
		if primarySubtag(v.Lang) == sub {
			return v, true
		}
	}
	if name, ok := commonNames[sub]; ok {
		for _, v := range voices {
			if strings.Contains(strings.ToLower(v.Name), name) {
				return v, true
			}
		}
	}
	return Voice{}, false
}
