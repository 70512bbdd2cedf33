package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/provider"
)

const defaultBaseURL = "https://api.datamuse.com"

// maxResultsCap is the upstream limit on the max parameter.
const maxResultsCap = 1000

// Adapter queries the Datamuse word-association API. Datamuse is the richest
// free source: it carries frequency figures and IPA pronunciations on top of
// definitions and related words.
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
	return model.ProviderDatamuse
}

// Query looks up word, fetching the exact spelling plus synonym and antonym
// lists in parallel. Returns nil when the word is unknown or anything fails.
func (a *Adapter) Query(ctx context.Context, word string, maxResults int) *model.WordResult {
	result, err := a.lookup(ctx, word, maxResults)
	if err != nil {
		log.Printf("[Datamuse] Lookup %q failed: %v", word, err)
		return nil
	}
	return result
}

func (a *Adapter) lookup(ctx context.Context, rawWord string, maxResults int) (*model.WordResult, error) {
	word := normalizeWord(rawWord)
	maxResults = clampMaxResults(maxResults)

	var exact, synonyms, antonyms []apiWord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		// max=3 covers cases like "read-only" where the first candidate is
		// the shorter "read".
		exact, err = a.fetchWords(gctx, fmt.Sprintf("sp=%s&md=dprf&max=3&ipa=1", word))
		return err
	})
	g.Go(func() (err error) {
		synonyms, err = a.fetchWords(gctx, fmt.Sprintf("ml=%s&md=dprf&max=%d&ipa=1", word, maxResults))
		return err
	})
	g.Go(func() (err error) {
		antonyms, err = a.fetchWords(gctx, fmt.Sprintf("rel_ant=%s&md=dprf&max=%d&ipa=1", word, maxResults))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	match := selectExactMatch(exact, word)
	if match == nil {
		return nil, nil
	}

	definitions := make([]model.Definition, 0, len(match.Defs))
	for _, raw := range match.Defs {
		def, err := parseDefinition(raw)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, def)
	}

	meta := parseTags(match.Tags)
	frequency := meta.frequency

	return &model.WordResult{
		Name:          match.Word,
		PartsOfSpeech: meta.partsOfSpeech,
		Phonetics:     meta.phonetics,
		Definitions:   definitions,
		Examples:      []model.Example{},
		Related: model.Related{
			Synonyms: model.Dedupe(collectWords(synonyms)),
			Antonyms: model.Dedupe(collectWords(antonyms)),
		},
		AudioURLs: []string{},
		Frequency: &frequency,
		OriginAPI: model.ProviderDatamuse,
	}, nil
}

// Suggest returns autocomplete candidates from the /sug endpoint.
func (a *Adapter) Suggest(ctx context.Context, word string, maxResults int) ([]string, error) {
	reqURL := fmt.Sprintf("%s/sug?s=%s&max=%d", a.baseURL, normalizeWord(word), clampMaxResults(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: /sug returned status %d", resp.StatusCode)
	}

	var suggestions []apiSuggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Word != "" {
			words = append(words, s.Word)
		}
	}
	return words, nil
}

func (a *Adapter) fetchWords(ctx context.Context, query string) ([]apiWord, error) {
	reqURL := a.baseURL + "/words?" + query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: /words returned status %d", resp.StatusCode)
	}

	var words []apiWord
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, err
	}

	for _, w := range words {
		if w.Word == "" {
			return nil, fmt.Errorf("datamuse: candidate without a word field")
		}
	}
	return words, nil
}

// normalizeWord lowercases and joins multi-word phrases with the query
// placeholder Datamuse expects.
func normalizeWord(word string) string {
	word = strings.ToLower(word)
	word = strings.ReplaceAll(word, " ", "+")
	return strings.ReplaceAll(word, "-", "+")
}

func clampMaxResults(maxResults int) int {
	if maxResults <= 0 {
		return provider.DefaultMaxResults
	}
	if maxResults > maxResultsCap {
		return maxResultsCap
	}
	return maxResults
}

// selectExactMatch picks the candidate whose word matches the normalized
// query, comparing with spaces and placeholders stripped so "care+free"
// matches "care free".
func selectExactMatch(candidates []apiWord, word string) *apiWord {
	want := strings.ReplaceAll(word, "+", "")
	for i := range candidates {
		got := strings.ReplaceAll(candidates[i].Word, " ", "")
		if strings.EqualFold(got, want) {
			return &candidates[i]
		}
	}
	return nil
}

func collectWords(words []apiWord) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Word)
	}
	return out
}
