package datamuse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wordstash/api/internal/model"
)

// apiWord is one element of the /words response. Tags pack metadata as
// "key:value" strings ("f:2121.233", "ipa_pron:bɪkˈʌmz") next to bare
// part-of-speech codes; defs pack the code and the text tab-separated.
type apiWord struct {
	Word        string   `json:"word"`
	Score       float64  `json:"score"`
	Defs        []string `json:"defs"`
	DefHeadword string   `json:"defHeadword"`
	Tags        []string `json:"tags"`
}

// apiSuggestion is one element of the /sug response.
type apiSuggestion struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// posFromCode maps Datamuse part-of-speech codes onto the canonical
// enumeration. "u" is a valid code meaning unknown, hence the nil value with
// ok set. "prop" actually marks a proper noun upstream but has always been
// mapped to preposition here; preserved as-is so stored records stay
// comparable.
func posFromCode(code string) (pos *model.PartOfSpeech, ok bool) {
	switch code {
	case "n", "N":
		return model.POS(model.Noun), true
	case "v":
		return model.POS(model.Verb), true
	case "adj":
		return model.POS(model.Adjective), true
	case "u":
		return nil, true
	case "adv":
		return model.POS(model.Adverb), true
	case "prop":
		return model.POS(model.Preposition), true
	default:
		return nil, false
	}
}

// parseDefinition splits a raw "<pos>\t<definition text>" string. An unknown
// part-of-speech prefix rejects the whole response, matching the strict
// validation the lookup applies at the network boundary.
func parseDefinition(raw string) (model.Definition, error) {
	parts := strings.SplitN(raw, "\t", 2)
	if len(parts) != 2 {
		return model.Definition{}, fmt.Errorf("definition %q is not tab-separated", raw)
	}

	pos, ok := posFromCode(parts[0])
	if !ok {
		return model.Definition{}, fmt.Errorf("definition %q has unknown part-of-speech code %q", raw, parts[0])
	}

	return model.Definition{
		PartOfSpeech: pos,
		Definition:   strings.TrimSpace(parts[1]),
	}, nil
}

// wordMetadata is what parseTags extracts from one candidate's tag list.
type wordMetadata struct {
	partsOfSpeech []*model.PartOfSpeech
	phonetics     []string
	frequency     model.Frequency
}

// parseTags walks a candidate's tags, collecting part-of-speech codes and the
// packed key:value metadata. Unrecognized metadata keys (pron, results_type,
// cluster data, syn/ant markers) are skipped.
func parseTags(tags []string) wordMetadata {
	meta := wordMetadata{}

	var perMillion float64
	for _, tag := range tags {
		if pos, ok := posFromCode(tag); ok {
			meta.partsOfSpeech = append(meta.partsOfSpeech, pos)
			continue
		}

		kv := strings.SplitN(tag, ":", 2)
		if len(kv) != 2 {
			continue
		}

		switch kv[0] {
		case "ipa_pron":
			// Broad transcription notation, as opposed to strict /.../ IPA.
			meta.phonetics = []string{"[" + kv[1] + "]"}
		case "f":
			if f, err := strconv.ParseFloat(kv[1], 64); err == nil {
				perMillion = f
			}
		}
	}

	meta.frequency = model.FrequencyFromPerMillion(perMillion)
	return meta
}
