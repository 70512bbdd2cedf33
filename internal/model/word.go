package model

import (
	"strings"
	"time"
)

// ProviderID identifies one of the upstream dictionary APIs.
type ProviderID string

const (
	ProviderDatamuse       ProviderID = "datamuse"
	ProviderDictionaryAPI  ProviderID = "dictapi"
	ProviderFreeDictionary ProviderID = "freedict"
	ProviderUrban          ProviderID = "urban"
)

// ProviderFallbackOrder is the fixed priority used when no provider is
// requested explicitly. Higher-quality free providers come first; the order
// must stay stable because lookups and tests depend on it.
var ProviderFallbackOrder = []ProviderID{
	ProviderDatamuse,
	ProviderDictionaryAPI,
	ProviderFreeDictionary,
	ProviderUrban,
}

// KnownProvider reports whether id matches one of the configured upstreams.
func KnownProvider(id ProviderID) bool {
	for _, p := range ProviderFallbackOrder {
		if p == id {
			return true
		}
	}
	return false
}

// ProviderDisplayName returns the human-readable name of a provider.
func ProviderDisplayName(id ProviderID) string {
	switch id {
	case ProviderDatamuse:
		return "Datamuse"
	case ProviderDictionaryAPI:
		return "Dictionary API"
	case ProviderFreeDictionary:
		return "Free Dictionary"
	case ProviderUrban:
		return "Urban Dictionary"
	default:
		return "Unknown"
	}
}

// PartOfSpeech is the closed set of grammatical categories a sense can carry.
// A nil *PartOfSpeech means the upstream did not say.
type PartOfSpeech string

const (
	Noun         PartOfSpeech = "noun"
	Pronoun      PartOfSpeech = "pronoun"
	Verb         PartOfSpeech = "verb"
	Adjective    PartOfSpeech = "adjective"
	Adverb       PartOfSpeech = "adverb"
	Preposition  PartOfSpeech = "preposition"
	Conjunction  PartOfSpeech = "conjunction"
	Interjection PartOfSpeech = "interjection"
	Article      PartOfSpeech = "article"
	Determiner   PartOfSpeech = "determiner"
)

// ParsePartOfSpeech validates a raw part-of-speech string against the closed
// enumeration. Used by adapters at the response-validation boundary.
func ParsePartOfSpeech(raw string) (PartOfSpeech, bool) {
	switch pos := PartOfSpeech(strings.ToLower(strings.TrimSpace(raw))); pos {
	case Noun, Pronoun, Verb, Adjective, Adverb, Preposition, Conjunction, Interjection, Article, Determiner:
		return pos, true
	default:
		return "", false
	}
}

// POS returns a pointer to pos, for filling optional fields.
func POS(pos PartOfSpeech) *PartOfSpeech {
	return &pos
}

// Frequency buckets a word's occurrences-per-million figure.
type Frequency string

const (
	VeryCommon Frequency = "very common"
	Common     Frequency = "common"
	Uncommon   Frequency = "uncommon"
	Rare       Frequency = "rare"
	VeryRare   Frequency = "very rare"
)

// FrequencyFromPerMillion converts a raw occurrences-per-million figure into a
// bucket. Boundary values fall into the lower bucket.
func FrequencyFromPerMillion(perMillion float64) Frequency {
	switch {
	case perMillion > 1000:
		return VeryCommon
	case perMillion > 400:
		return Common
	case perMillion > 40:
		return Uncommon
	case perMillion > 10:
		return Rare
	default:
		return VeryRare
	}
}

// Definition is one sense of a word, tagged with its part of speech when known.
type Definition struct {
	PartOfSpeech *PartOfSpeech `json:"partOfSpeech"`
	Definition   string        `json:"definition"`
}

// Example is a usage sample, tagged with its part of speech when known.
type Example struct {
	PartOfSpeech *PartOfSpeech `json:"partOfSpeech"`
	Example      string        `json:"example"`
}

// Related holds de-duplicated synonym and antonym lists. Order is not
// guaranteed.
type Related struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

// WordResult is the canonical record every provider response is normalized
// into. Phonetics entries use either strict IPA "/.../" or broad "[...]"
// notation, never mixed within one string.
type WordResult struct {
	Name          string          `json:"name"`
	PartsOfSpeech []*PartOfSpeech `json:"partsOfSpeech"`
	Phonetics     []string        `json:"phonetics"`
	Definitions   []Definition    `json:"definitions"`
	Examples      []Example       `json:"examples"`
	Related       Related         `json:"related"`
	AudioURLs     []string        `json:"audioUrls"`
	Frequency     *Frequency      `json:"frequency"`
	OriginAPI     ProviderID      `json:"originApi"`
}

// CacheEntry is what actually sits in the store for one lookup.
type CacheEntry struct {
	CachedOn time.Time  `json:"cachedOn"`
	Data     WordResult `json:"data"`
}

// Expired reports whether the entry has outlived the configured duration.
func (e CacheEntry) Expired(cacheDuration time.Duration, now time.Time) bool {
	return e.CachedOn.Add(cacheDuration).Before(now)
}

const cacheKeySeparator = "-"

// CacheKey builds the store key for one (provider, word) lookup. The word is
// stored as the lookup used it; the entry's Data.Name must normalize to the
// same form or batch scans could not pair keys with records.
func CacheKey(provider ProviderID, word string) string {
	return string(provider) + cacheKeySeparator + word
}

// SplitCacheKey breaks a store key back into its provider and word halves.
// The second return is false for keys that do not belong to the dictionary
// cache (for example the reserved settings key).
func SplitCacheKey(key string) (ProviderID, string, bool) {
	parts := strings.SplitN(key, cacheKeySeparator, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	provider := ProviderID(parts[0])
	if !KnownProvider(provider) {
		return "", "", false
	}
	return provider, parts[1], true
}

// KnownCacheKey reports whether key is a dictionary cache key.
func KnownCacheKey(key string) bool {
	_, _, ok := SplitCacheKey(key)
	return ok
}

// Dedupe returns vals with duplicates removed, first occurrence wins.
func Dedupe(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
