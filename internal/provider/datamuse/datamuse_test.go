package datamuse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wordstash/api/internal/model"
)

// newLookupServer serves the three /words subqueries and /sug from canned
// bodies keyed by the leading query parameter.
func newLookupServer(t *testing.T, spBody, mlBody, antBody string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/sug" {
			w.Write([]byte(`[{"word":"become","score":3000},{"word":"becomes","score":500}]`))
			return
		}

		if r.URL.Path != "/words" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		switch {
		case q.Get("sp") != "":
			w.Write([]byte(spBody))
		case q.Get("ml") != "":
			w.Write([]byte(mlBody))
		case q.Get("rel_ant") != "":
			w.Write([]byte(antBody))
		default:
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
			w.Write([]byte(`[]`))
		}
	}))
}

func TestAdapter_Query_Success(t *testing.T) {
	t.Parallel()

	spBody := `[{
		"word": "becomes",
		"score": 3643,
		"defs": ["v\tcome into existence", "n\ta change"],
		"tags": ["v", "n", "ipa_pron:bɪkˈʌmz", "f:401.5"]
	}]`
	mlBody := `[{"word":"turns","score":100},{"word":"grows","score":90},{"word":"turns","score":80}]`
	antBody := `[{"word":"remains","score":50}]`

	srv := newLookupServer(t, spBody, mlBody, antBody)
	defer srv.Close()

	a := NewWithURL(srv.URL)
	result := a.Query(context.Background(), "becomes", 10)
	if result == nil {
		t.Fatal("expected non-nil result")
	}

	if result.Name != "becomes" {
		t.Errorf("Name = %q, want %q", result.Name, "becomes")
	}
	if result.OriginAPI != model.ProviderDatamuse {
		t.Errorf("OriginAPI = %q, want datamuse", result.OriginAPI)
	}

	if len(result.Definitions) != 2 {
		t.Fatalf("len(Definitions) = %d, want 2", len(result.Definitions))
	}
	d0 := result.Definitions[0]
	if d0.PartOfSpeech == nil || *d0.PartOfSpeech != model.Verb {
		t.Errorf("Definitions[0].PartOfSpeech = %v, want verb", d0.PartOfSpeech)
	}
	if d0.Definition != "come into existence" {
		t.Errorf("Definitions[0].Definition = %q", d0.Definition)
	}

	if len(result.PartsOfSpeech) != 2 {
		t.Fatalf("len(PartsOfSpeech) = %d, want 2", len(result.PartsOfSpeech))
	}

	if len(result.Phonetics) != 1 || result.Phonetics[0] != "[bɪkˈʌmz]" {
		t.Errorf("Phonetics = %v, want [bɪkˈʌmz] in broad notation", result.Phonetics)
	}

	if result.Frequency == nil || *result.Frequency != model.Common {
		t.Errorf("Frequency = %v, want common", result.Frequency)
	}

	wantSyn := []string{"turns", "grows"}
	if len(result.Related.Synonyms) != len(wantSyn) {
		t.Fatalf("Synonyms = %v, want %v", result.Related.Synonyms, wantSyn)
	}
	for i := range wantSyn {
		if result.Related.Synonyms[i] != wantSyn[i] {
			t.Errorf("Synonyms[%d] = %q, want %q", i, result.Related.Synonyms[i], wantSyn[i])
		}
	}
	if len(result.Related.Antonyms) != 1 || result.Related.Antonyms[0] != "remains" {
		t.Errorf("Antonyms = %v, want [remains]", result.Related.Antonyms)
	}

	if len(result.Examples) != 0 {
		t.Errorf("Examples = %v, want empty", result.Examples)
	}
	if len(result.AudioURLs) != 0 {
		t.Errorf("AudioURLs = %v, want empty", result.AudioURLs)
	}
}

func TestAdapter_Query_NoExactMatch(t *testing.T) {
	t.Parallel()

	// Spelling candidates that only come close do not count as found.
	spBody := `[{"word":"become","score":100,"tags":["v"]}]`
	srv := newLookupServer(t, spBody, `[]`, `[]`)
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "becomez", 10); result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestAdapter_Query_HyphenatedMatch(t *testing.T) {
	t.Parallel()

	// "care-free" normalizes to "care+free"; the candidate "care free"
	// matches with spaces stripped.
	spBody := `[{"word":"care","score":200,"tags":["n"]},{"word":"care free","score":100,"tags":["adj","f:2.1"]}]`
	srv := newLookupServer(t, spBody, `[]`, `[]`)
	defer srv.Close()

	a := NewWithURL(srv.URL)
	result := a.Query(context.Background(), "care-free", 10)
	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if result.Name != "care free" {
		t.Errorf("Name = %q, want %q", result.Name, "care free")
	}
	if result.Frequency == nil || *result.Frequency != model.VeryRare {
		t.Errorf("Frequency = %v, want very rare", result.Frequency)
	}
}

func TestAdapter_Query_MalformedDefinitionRejects(t *testing.T) {
	t.Parallel()

	spBody := `[{"word":"broken","score":10,"defs":["no tab separator here"],"tags":["n"]}]`
	srv := newLookupServer(t, spBody, `[]`, `[]`)
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "broken", 10); result != nil {
		t.Fatalf("expected nil result for malformed definition, got %+v", result)
	}
}

func TestAdapter_Query_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewWithURL(srv.URL)
	if result := a.Query(context.Background(), "anything", 10); result != nil {
		t.Fatalf("expected nil result on upstream error, got %+v", result)
	}
}

func TestAdapter_Suggest(t *testing.T) {
	t.Parallel()

	srv := newLookupServer(t, `[]`, `[]`, `[]`)
	defer srv.Close()

	a := NewWithURL(srv.URL)
	words, err := a.Suggest(context.Background(), "beco", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 || words[0] != "become" || words[1] != "becomes" {
		t.Errorf("Suggest = %v, want [become becomes]", words)
	}
}

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"read-only", "read+only"},
		{"ice cream cone", "ice+cream+cone"},
		{"mother-in law", "mother+in+law"},
	}

	for _, tt := range tests {
		if got := normalizeWord(tt.in); got != tt.want {
			t.Errorf("normalizeWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPosFromCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want *model.PartOfSpeech
		ok   bool
	}{
		{"n", model.POS(model.Noun), true},
		{"N", model.POS(model.Noun), true},
		{"v", model.POS(model.Verb), true},
		{"adj", model.POS(model.Adjective), true},
		{"adv", model.POS(model.Adverb), true},
		{"prop", model.POS(model.Preposition), true},
		{"u", nil, true},
		{"x", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := posFromCode(tt.code)
		if ok != tt.ok {
			t.Errorf("posFromCode(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			continue
		}
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("posFromCode(%q) = %v, want nil", tt.code, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("posFromCode(%q) = %v, want %v", tt.code, got, *tt.want)
		}
	}
}

func TestParseTags_FrequencyAlwaysSet(t *testing.T) {
	t.Parallel()

	meta := parseTags(nil)
	if meta.frequency != model.VeryRare {
		t.Errorf("frequency = %q, want very rare when no f tag present", meta.frequency)
	}

	meta = parseTags([]string{"f:2121.233"})
	if meta.frequency != model.VeryCommon {
		t.Errorf("frequency = %q, want very common", meta.frequency)
	}
}

func TestParseTags_SkipsUnknownKeys(t *testing.T) {
	t.Parallel()

	meta := parseTags([]string{"pron:bIk'Vmz", "results_type:primary_rel", "query:becomes", "n"})
	if len(meta.phonetics) != 0 {
		t.Errorf("phonetics = %v, want empty for non-IPA pron", meta.phonetics)
	}
	if len(meta.partsOfSpeech) != 1 {
		t.Errorf("partsOfSpeech = %v, want one entry", meta.partsOfSpeech)
	}
}
