package urban

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexBool accepts both JSON booleans and the "true"/"false" strings the
// scrape API is known to emit interchangeably.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = flexBool(asBool)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, err := strconv.ParseBool(asString)
		if err != nil {
			return fmt.Errorf("urban: %q is not a boolean", asString)
		}
		*b = flexBool(parsed)
		return nil
	}

	return fmt.Errorf("urban: cannot decode %s as boolean", data)
}

// apiResponse is the search response envelope.
type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	Term       string          `json:"term"`
	Found      flexBool        `json:"found"`
	TotalPages int             `json:"totalPages"`
	Data       []apiDefinition `json:"data"`
}

// apiDefinition is one crowd-sourced meaning. The API carries no
// part-of-speech information at all.
type apiDefinition struct {
	Word        string `json:"word"`
	Meaning     string `json:"meaning"`
	Example     string `json:"example"`
	Contributor string `json:"contributor"`
	Date        string `json:"date"`
}
