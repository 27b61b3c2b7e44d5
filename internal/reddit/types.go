package reddit

import (
	"bytes"
	"encoding/json"
)

// thing is the generic Reddit envelope: a kind tag plus a kind-specific
// payload decoded lazily.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

type commentData struct {
	ID      string  `json:"id"`
	Body    string  `json:"body"`
	Score   int     `json:"score"`
	Replies replies `json:"replies"`
}

// moreData is a "more" placeholder: continuation ids for children that were
// not included in the parent response.
type moreData struct {
	Children []string `json:"children"`
}

// replies is either an empty string (leaf comment) or a nested listing.
type replies struct {
	Listing *listing
}

func (r *replies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		r.Listing = nil
		return nil
	}

	var l listing
	if err := json.Unmarshal(trimmed, &l); err != nil {
		return err
	}
	r.Listing = &l
	return nil
}

// moreChildrenResponse is the /api/morechildren envelope (api_type=json).
type moreChildrenResponse struct {
	JSON struct {
		Data struct {
			Things []thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}
