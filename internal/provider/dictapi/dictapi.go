package dictapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wordstash/api/internal/model"
)

const defaultBaseURL = "https://api.dictionaryapi.dev"

// Adapter queries the dictionaryapi.dev lookup API: a flat list of meanings,
// each with its own definitions and two levels of synonym/antonym lists.
type Adapter struct {
	baseURL    string
	httpClient *http.Client
}

func New() *Adapter {
	return NewWithURL(defaultBaseURL)
}

// NewWithURL points the adapter at a custom base URL, mainly for tests.
func NewWithURL(baseURL string) *Adapter {
	return &Adapter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *Adapter) ID() model.ProviderID {
	return model.ProviderDictionaryAPI
}

func (a *Adapter) Query(ctx context.Context, word string, _ int) *model.WordResult {
	result, err := a.lookup(ctx, word)
	if err != nil {
		log.Printf("[DictionaryAPI] Lookup %q failed: %v", word, err)
		return nil
	}
	return result
}

func (a *Adapter) lookup(ctx context.Context, word string) (*model.WordResult, error) {
	reqURL := a.baseURL + "/api/v2/entries/en/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictapi: unexpected status %d", resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return convertEntry(entries[0])
}

// convertEntry normalizes the first response entry. An unrecognized
// part-of-speech value rejects the response rather than producing a partly
// wrong record.
func convertEntry(entry apiEntry) (*model.WordResult, error) {
	if entry.Word == "" {
		return nil, fmt.Errorf("dictapi: entry without a word field")
	}

	var phonetics []string
	if entry.Phonetic != "" {
		phonetics = append(phonetics, entry.Phonetic)
	}

	var audioURLs []string
	for _, ph := range entry.Phonetics {
		if ph.Text != "" {
			phonetics = append(phonetics, ph.Text)
		}
		if ph.Audio != "" {
			audioURLs = append(audioURLs, ph.Audio)
		}
	}

	var (
		partsOfSpeech []*model.PartOfSpeech
		definitions   []model.Definition
		examples      []model.Example
		synonyms      []string
		antonyms      []string
	)

	for _, meaning := range entry.Meanings {
		pos, ok := model.ParsePartOfSpeech(meaning.PartOfSpeech)
		if !ok {
			return nil, fmt.Errorf("dictapi: unknown part of speech %q", meaning.PartOfSpeech)
		}

		partsOfSpeech = append(partsOfSpeech, model.POS(pos))
		synonyms = append(synonyms, meaning.Synonyms...)
		antonyms = append(antonyms, meaning.Antonyms...)

		for _, def := range meaning.Definitions {
			definitions = append(definitions, model.Definition{
				PartOfSpeech: model.POS(pos),
				Definition:   def.Definition,
			})
			if def.Example != "" {
				examples = append(examples, model.Example{
					PartOfSpeech: model.POS(pos),
					Example:      def.Example,
				})
			}
			synonyms = append(synonyms, def.Synonyms...)
			antonyms = append(antonyms, def.Antonyms...)
		}
	}

	return &model.WordResult{
		Name:          entry.Word,
		PartsOfSpeech: partsOfSpeech,
		Phonetics:     model.Dedupe(phonetics),
		Definitions:   definitions,
		Examples:      examples,
		Related: model.Related{
			Synonyms: model.Dedupe(synonyms),
			Antonyms: model.Dedupe(antonyms),
		},
		AudioURLs: audioURLs,
		Frequency: nil,
		OriginAPI: model.ProviderDictionaryAPI,
	}, nil
}
