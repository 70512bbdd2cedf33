package freedict

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

const defaultBaseURL = "https://freedictionaryapi.com"

// Adapter queries the Free Dictionary API, whose senses nest recursively.
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
	return model.ProviderFreeDictionary
}

func (a *Adapter) Query(ctx context.Context, word string, _ int) *model.WordResult {
	result, err := a.lookup(ctx, word)
	if err != nil {
		log.Printf("[FreeDictionary] Lookup %q failed: %v", word, err)
		return nil
	}
	return result
}

func (a *Adapter) lookup(ctx context.Context, word string) (*model.WordResult, error) {
	reqURL := a.baseURL + "/api/v1/entries/en/" + url.PathEscape(word)

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
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return convertResponse(response)
}

func convertResponse(response apiResponse) (*model.WordResult, error) {
	if response.Word == "" {
		return nil, fmt.Errorf("freedict: response without a word field")
	}
	if len(response.Entries) == 0 {
		return nil, nil
	}

	var (
		partsOfSpeech []*model.PartOfSpeech
		phonetics     []string
		acc           senseAccumulator
	)

	for _, entry := range response.Entries {
		pos, ok := model.ParsePartOfSpeech(entry.PartOfSpeech)
		if !ok {
			return nil, fmt.Errorf("freedict: unknown part of speech %q", entry.PartOfSpeech)
		}
		partsOfSpeech = append(partsOfSpeech, model.POS(pos))

		for _, pron := range entry.Pronunciations {
			if pron.Type == "ipa" && pron.Text != "" {
				phonetics = append(phonetics, pron.Text)
			}
		}

		for _, sense := range entry.Senses {
			acc.flatten(model.POS(pos), sense)
		}
	}

	return &model.WordResult{
		Name:          response.Word,
		PartsOfSpeech: partsOfSpeech,
		Phonetics:     model.Dedupe(phonetics),
		Definitions:   acc.definitions(),
		Examples:      acc.examples(),
		Related: model.Related{
			Synonyms: model.Dedupe(acc.synonyms),
			Antonyms: model.Dedupe(acc.antonyms),
		},
		AudioURLs: []string{},
		Frequency: nil,
		OriginAPI: model.ProviderFreeDictionary,
	}, nil
}

// senseAccumulator collects flattened sense data across the whole tree.
type senseAccumulator struct {
	defs     []model.Definition
	exs      []model.Example
	synonyms []string
	antonyms []string
}

// flatten walks a sense and all its subsenses depth-first. Every level's
// definition, examples, quotes (kept as examples, references dropped),
// synonyms and antonyms land in the flat accumulators, all tagged with the
// entry's part of speech.
func (a *senseAccumulator) flatten(pos *model.PartOfSpeech, sense apiSense) {
	if sense.Definition != "" {
		a.defs = append(a.defs, model.Definition{PartOfSpeech: pos, Definition: sense.Definition})
	}

	for _, example := range sense.Examples {
		a.exs = append(a.exs, model.Example{PartOfSpeech: pos, Example: example})
	}
	for _, quote := range sense.Quotes {
		a.exs = append(a.exs, model.Example{PartOfSpeech: pos, Example: quote.Text})
	}

	a.synonyms = append(a.synonyms, sense.Synonyms...)
	a.antonyms = append(a.antonyms, sense.Antonyms...)

	for _, sub := range sense.Subsenses {
		a.flatten(pos, sub)
	}
}

func (a *senseAccumulator) definitions() []model.Definition {
	if a.defs == nil {
		return []model.Definition{}
	}
	return a.defs
}

func (a *senseAccumulator) examples() []model.Example {
	if a.exs == nil {
		return []model.Example{}
	}
	return a.exs
}
