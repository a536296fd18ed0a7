// internal/nlu/extract/extractor.go

// Package extract turns a raw user utterance into structured entities
// using fixed lexicons. Extraction is pure and total: any input maps to
// a result, unrecognized text maps to empty fields.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"finhealth-assistant/internal/models"
)

// cityStatePattern accepts any "city, state" form so unknown cities can
// still be carried into context and answered with a no-data response.
var cityStatePattern = regexp.MustCompile(`\b([a-z]+),\s*(?:[a-z]{2}|texas|california|new york|florida|illinois|ohio|pennsylvania|michigan|georgia|arizona|washington|colorado|tennessee|massachusetts|virginia|missouri|minnesota|wisconsin|maryland|indiana|oregon|nevada|oklahoma|kentucky|louisiana|alabama|arkansas|mississippi|kansas|iowa|utah|nebraska|idaho|maine|montana|delaware|vermont|wyoming|alaska|hawaii)\b`)

// gazetteerKeys holds gazetteer aliases sorted longest first so lookup
// prefers the most specific alias ("new york city" over "new york").
var gazetteerKeys = sortedGazetteerKeys()

func sortedGazetteerKeys() []string {
	keys := make([]string, 0, len(locationGazetteer))
	for k := range locationGazetteer {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Extract runs all entity lexicons over one utterance.
func Extract(message string) models.Entities {
	lower := strings.ToLower(message)
	return models.Entities{
		Location:   Location(lower),
		Procedures: Procedures(lower),
		Carriers:   Carriers(lower),
		Symptoms:   Symptoms(lower),
	}
}

// Location resolves the utterance to at most one canonical city.
// The longest matching gazetteer alias wins; failing that, a
// "city, state" mention yields the title-cased city name.
func Location(lower string) string {
	for _, alias := range gazetteerKeys {
		if containsWord(lower, alias) {
			return locationGazetteer[alias]
		}
	}
	if m := cityStatePattern.FindStringSubmatch(lower); m != nil {
		return titleCase(strings.TrimSpace(m[1]))
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Procedures returns every canonical procedure mentioned, in rule order,
// without duplicates.
func Procedures(lower string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rule := range procedureRules {
		if seen[rule.canonical] {
			continue
		}
		for _, phrase := range rule.phrases {
			if containsWord(lower, phrase) {
				out = append(out, rule.canonical)
				seen[rule.canonical] = true
				break
			}
		}
	}
	return out
}

// Carriers returns every carrier mentioned, in rule order. Callers that
// need a single plan take the first.
func Carriers(lower string) []string {
	var out []string
	for _, rule := range carrierRules {
		for _, phrase := range rule.phrases {
			if containsWord(lower, phrase) {
				out = append(out, rule.canonical)
				break
			}
		}
	}
	return out
}

// Symptoms returns every recognized symptom phrase, in list order.
func Symptoms(lower string) []string {
	var out []string
	for _, phrase := range symptomPhrases {
		if containsWord(lower, phrase) {
			out = append(out, phrase)
		}
	}
	return out
}

// containsWord reports whether phrase occurs in text bounded by
// non-alphanumeric characters on both sides. Prevents "la" from
// matching inside "plan".
func containsWord(text, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordChar(text[idx-1])
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	return !isWordChar(text[end])
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
