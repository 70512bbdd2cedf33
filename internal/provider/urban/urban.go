package urban

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/provider"
)

const defaultBaseURL = "https://unofficialurbandictionaryapi.com"

// Adapter queries the Urban Dictionary scrape API for slang meanings. No
// part-of-speech, phonetics or frequency data exists upstream, so results
// carry definitions and examples only.
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
	return model.ProviderUrban
}

func (a *Adapter) Query(ctx context.Context, word string, maxResults int) *model.WordResult {
	result, err := a.lookup(ctx, word, maxResults)
	if err != nil {
		log.Printf("[UrbanDictionary] Lookup %q failed: %v", word, err)
		return nil
	}
	return result
}

func (a *Adapter) lookup(ctx context.Context, word string, maxResults int) (*model.WordResult, error) {
	response, err := a.search(ctx, word, maxResults)
	if err != nil {
		return nil, err
	}
	if !bool(response.Found) || len(response.Data) == 0 {
		return nil, nil
	}

	definitions := make([]model.Definition, 0, len(response.Data))
	examples := make([]model.Example, 0, len(response.Data))
	for _, def := range response.Data {
		definitions = append(definitions, model.Definition{PartOfSpeech: nil, Definition: def.Meaning})
		examples = append(examples, model.Example{PartOfSpeech: nil, Example: def.Example})
	}

	return &model.WordResult{
		Name:          response.Term,
		PartsOfSpeech: []*model.PartOfSpeech{},
		Phonetics:     []string{},
		Definitions:   definitions,
		Examples:      examples,
		Related:       model.Related{Synonyms: []string{}, Antonyms: []string{}},
		AudioURLs:     []string{},
		Frequency:     nil,
		OriginAPI:     model.ProviderUrban,
	}, nil
}

// Suggest reuses the search endpoint, collecting the matched headwords.
func (a *Adapter) Suggest(ctx context.Context, word string, maxResults int) ([]string, error) {
	response, err := a.search(ctx, word, maxResults)
	if err != nil {
		return nil, err
	}
	if !bool(response.Found) {
		return nil, nil
	}

	words := make([]string, 0, len(response.Data))
	for _, def := range response.Data {
		if def.Word != "" {
			words = append(words, def.Word)
		}
	}
	return model.Dedupe(words), nil
}

func (a *Adapter) search(ctx context.Context, word string, maxResults int) (*apiResponse, error) {
	if maxResults <= 0 {
		maxResults = provider.DefaultMaxResults
	}

	reqURL := fmt.Sprintf("%s/api/search?term=%s&limit=%d", a.baseURL, url.QueryEscape(word), maxResults)

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
		return &apiResponse{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urban: unexpected status %d", resp.StatusCode)
	}

	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("urban: upstream reported status %d", response.StatusCode)
	}

	return &response, nil
}
