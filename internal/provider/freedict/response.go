package freedict

// apiResponse is the top-level lookup response: one word, multiple entries
// (one per part of speech or etymology).
type apiResponse struct {
	Word    string     `json:"word"`
	Entries []apiEntry `json:"entries"`
}

type apiEntry struct {
	PartOfSpeech   string             `json:"partOfSpeech"`
	Pronunciations []apiPronunciation `json:"pronunciations"`
	Senses         []apiSense         `json:"senses"`
	Synonyms       []string           `json:"synonyms"`
	Antonyms       []string           `json:"antonyms"`
}

// apiPronunciation carries a transcription in one of two notations; only the
// "ipa" type maps onto the canonical phonetics list.
type apiPronunciation struct {
	Type string   `json:"type"`
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// apiSense is one meaning. Subsenses nest recursively, in practice rarely
// deeper than three or four levels.
type apiSense struct {
	Definition string     `json:"definition"`
	Tags       []string   `json:"tags"`
	Examples   []string   `json:"examples"`
	Quotes     []apiQuote `json:"quotes"`
	Synonyms   []string   `json:"synonyms"`
	Antonyms   []string   `json:"antonyms"`
	Subsenses  []apiSense `json:"subsenses"`
}

type apiQuote struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}
