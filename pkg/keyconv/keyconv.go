// Package keyconv translates flat records between the persistence naming
// convention (snake_case) and the application naming convention (camelCase).
//
// The translation is a best-effort heuristic applied letter by letter:
// ToApplicationForm rewrites every "_x" as "X", ToStorageForm rewrites every
// uppercase letter as "_" plus its lowercase form. Digits pass through
// untouched, so geo_maps <-> geoMaps round-trips and so does v2_url <-> v2Url.
// Keys with consecutive-uppercase acronyms are inherently ambiguous; the
// first-encountered transformation wins and no attempt is made to recognise
// acronyms as units. For the same reason two distinct input keys can map to
// the same output key (aB and a_b both become a_b); map iteration order then
// decides which value survives, so senders must not mix conventions within
// one record.
package keyconv

import (
	"strings"
	"unicode"
)

// ToApplicationForm returns a copy of the record with snake_case keys
// rewritten to camelCase. Values are carried over untouched. A nil record is
// returned as nil, not an error.
func ToApplicationForm(record map[string]interface{}) map[string]interface{} {
	if record == nil {
		return nil
	}
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[storageToApp(k)] = v
	}
	return out
}

// ToStorageForm returns a copy of the record with camelCase keys rewritten to
// snake_case. Values are carried over untouched; nil in, nil out.
func ToStorageForm(record map[string]interface{}) map[string]interface{} {
	if record == nil {
		return nil
	}
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[appToStorage(k)] = v
	}
	return out
}

func storageToApp(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	runes := []rune(key)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '_' && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func appToStorage(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteRune('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
