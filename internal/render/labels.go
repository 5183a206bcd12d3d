package render

import (
	"strings"
	"unicode"
)

var labels = map[string]string{
	"general_arousal":         "Arousal",
	"valence":                 "Valence",
	"valence_arousal_refined": "Valence-Arousal",
	"context_complet":         "Context",
	"age_class":               "Age Class",
	"subject":                 "Subject",
	"playback":                "Playback",

	"high":          "High Arousal",
	"low":           "Low Arousal",
	"positive":      "Positive Valence",
	"negative":      "Negative Valence",
	"positive_high": "Positive-High",
	"positive_low":  "Positive-Low",
	"negative_high": "Negative-High",
	"negative_low":  "Negative-Low",

	"Agonistic_victim":         "Agonistic victim",
	"Agonistic_third-party":    "Agonistic third party",
	"Agonistic_aggressor":      "Agonistic aggressor",
	"Romm_shift":               "Change in enclosure",
	"External-event":           "External event",
	"Post_conflict":            "Post conflict",
	"Infant_Begging_to_mother": "Infant begging to mother",
}

// Label returns the display label for a field name or category value.
// Values without an entry are shown as-is.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// fieldLabel is Label with a title-cased fallback, used for headings.
func fieldLabel(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return titleCase(key)
}

// CategoryLabel is the selector and summary label of a category value:
// "positive_high" becomes "Positive High".
func CategoryLabel(cat string) string {
	return titleCase(cat)
}

// titleCase turns "context_general" into "Context General": underscores
// become spaces, each word starts upper-case and continues lower-case.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range strings.ReplaceAll(s, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
