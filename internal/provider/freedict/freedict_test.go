package freedict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wordstash/api/internal/model"
)

func TestAdapter_Query_NestedSenses(t *testing.T) {
	t.Parallel()

	body := `{
		"word": "run",
		"entries": [{
			"partOfSpeech": "verb",
			"pronunciations": [
				{"type": "ipa", "text": "/rʌn/"},
				{"type": "enpr", "text": "rŭn"}
			],
			"senses": [{
				"definition": "To move swiftly.",
				"examples": ["She runs every day."],
				"quotes": [{"text": "He ran like the wind.", "reference": "Some Book"}],
				"synonyms": ["sprint"],
				"antonyms": ["walk"],
				"subsenses": [
					{
						"definition": "To flee.",
						"synonyms": ["flee"],
						"subsenses": [{"definition": "To escape pursuit."}]
					},
					{"definition": "To jog."}
				]
			}]
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/entries/en/run" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	result := a.Query(context.Background(), "run", 10)
	if result == nil {
		t.Fatal("expected non-nil result")
	}

	if result.Name != "run" {
		t.Errorf("Name = %q, want %q", result.Name, "run")
	}
	if result.OriginAPI != model.ProviderFreeDictionary {
		t.Errorf("OriginAPI = %q, want freedict", result.OriginAPI)
	}

	// Only the ipa-typed pronunciation survives.
	if len(result.Phonetics) != 1 || result.Phonetics[0] != "/rʌn/" {
		t.Errorf("Phonetics = %v, want [/rʌn/]", result.Phonetics)
	}

	// Depth-first flattening: root, flee, escape, jog.
	wantDefs := []string{"To move swiftly.", "To flee.", "To escape pursuit.", "To jog."}
	if len(result.Definitions) != len(wantDefs) {
		t.Fatalf("len(Definitions) = %d, want %d", len(result.Definitions), len(wantDefs))
	}
	for i, want := range wantDefs {
		if result.Definitions[i].Definition != want {
			t.Errorf("Definitions[%d] = %q, want %q", i, result.Definitions[i].Definition, want)
		}
		if result.Definitions[i].PartOfSpeech == nil || *result.Definitions[i].PartOfSpeech != model.Verb {
			t.Errorf("Definitions[%d].PartOfSpeech = %v, want verb", i, result.Definitions[i].PartOfSpeech)
		}
	}

	// Examples plus quote text, references dropped.
	if len(result.Examples) != 2 {
		t.Fatalf("len(Examples) = %d, want 2", len(result.Examples))
	}
	if result.Examples[1].Example != "He ran like the wind." {
		t.Errorf("Examples[1] = %q", result.Examples[1].Example)
	}

	// Synonyms from every nesting level.
	wantSyn := map[string]bool{"sprint": true, "flee": true}
	if len(result.Related.Synonyms) != len(wantSyn) {
		t.Fatalf("Synonyms = %v, want %v", result.Related.Synonyms, wantSyn)
	}
	if len(result.Related.Antonyms) != 1 || result.Related.Antonyms[0] != "walk" {
		t.Errorf("Antonyms = %v, want [walk]", result.Related.Antonyms)
	}
}

func TestAdapter_Query_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "asdfxyz", 10); result != nil {
		t.Fatalf("expected nil result for 404, got %+v", result)
	}
}

func TestAdapter_Query_NoEntries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"word": "ghost", "entries": []}`))
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "ghost", 10); result != nil {
		t.Fatalf("expected nil result for empty entries, got %+v", result)
	}
}

func TestAdapter_Query_UnknownPartOfSpeechRejects(t *testing.T) {
	t.Parallel()

	body := `{
		"word": "odd",
		"entries": [{"partOfSpeech": "numeral", "senses": [{"definition": "x"}]}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "odd", 10); result != nil {
		t.Fatalf("expected nil result for unknown part of speech, got %+v", result)
	}
}

func TestAdapter_Query_SenseWithoutDefinition(t *testing.T) {
	t.Parallel()

	// A sense that only carries examples still contributes them; no empty
	// definition is fabricated.
	body := `{
		"word": "quirk",
		"entries": [{
			"partOfSpeech": "noun",
			"senses": [{"definition": "", "examples": ["An odd quirk."]}]
		}]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	result := a.Query(context.Background(), "quirk", 10)
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if len(result.Definitions) != 0 {
		t.Errorf("Definitions = %v, want empty", result.Definitions)
	}
	if len(result.Examples) != 1 {
		t.Errorf("Examples = %v, want one entry", result.Examples)
	}
}
