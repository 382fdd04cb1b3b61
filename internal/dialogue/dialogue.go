package dialogue

import "strings"

// Rule maps a set of trigger keywords to a single canned response.
type Rule struct {
	Topic    string
	Keywords []string
	Response string
}

// Table holds one language's hand-authored rules and widget strings.
// Tables are authored independently per language; keyword coverage and
// phrasing are not guaranteed to line up across languages.
type Table struct {
	Lang   string // primary language subtag, e.g. "te"
	Locale string // recognition/synthesis locale, e.g. "te-IN"

	Welcome  string
	Fallback string

	// Emergency is evaluated before Rules regardless of authoring order, so a
	// phrase containing both booking and emergency keywords always triages.
	Emergency Rule
	Rules     []Rule

	// Localized widget error strings.
	MicDenied   string
	Unsupported string
	EngineFail  string
	ErrPrefix   string
}

// Respond maps free-text input to exactly one response string. Matching is
// case-insensitive substring containment over the table's keyword sets; the
// first matching rule wins and the fallback is returned when nothing matches.
func (t *Table) Respond(text string) string {
	lower := strings.ToLower(text)
	if containsAny(lower, t.Emergency.Keywords) {
		return t.Emergency.Response
	}
	for _, r := range t.Rules {
		if containsAny(lower, r.Keywords) {
			return r.Response
		}
	}
	return t.Fallback
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ForLang returns the table for a primary language subtag or full locale.
func ForLang(lang string) (*Table, bool) {
	key := strings.ToLower(lang)
	if i := strings.IndexAny(key, "-_"); i > 0 {
		key = key[:i]
	}
	t, ok := tables[key]
	return t, ok
}

// Languages lists the supported primary language subtags.
func Languages() []string {
	out := make([]string, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	return out
}
