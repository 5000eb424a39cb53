package document

import (
	"strings"
	"unicode"
)

type CheckItem struct {
	DocName      string        `json:"doc_name"`
	HasDocument  bool          `json:"has_document"`
	UserDocument *UserDocument `json:"user_document,omitempty"`
}

// Check pairs each required document with the first owned document whose
// type or name matches it after whitespace removal and lower-casing. A match
// is equality or containment in either direction. Output follows required.
func Check(required []string, mine []UserDocument) []CheckItem {
	out := make([]CheckItem, 0, len(required))
	for _, name := range required {
		item := CheckItem{DocName: name}
		want := normalize(name)
		for i := range mine {
			if matches(want, normalize(mine[i].DocType)) || matches(want, normalize(mine[i].DocName)) {
				d := mine[i]
				item.HasDocument = true
				item.UserDocument = &d
				break
			}
		}
		out = append(out, item)
	}
	return out
}

func matches(want, have string) bool {
	// An empty side would contain-match everything.
	if want == "" || have == "" {
		return false
	}
	return strings.Contains(have, want) || strings.Contains(want, have)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
