package dictapi

// apiEntry is one element of the response array. The API answers with a
// single-element array for the words in scope here.
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Audio     string `json:"audio"`
	SourceURL string `json:"sourceUrl"`
	Text      string `json:"text"`
}

// apiMeaning groups definitions under one part of speech. Synonym and antonym
// lists exist both here and on each definition; the two levels are merged
// during normalization.
type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
	Antonyms     []string        `json:"antonyms"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Example    string   `json:"example"`
}
