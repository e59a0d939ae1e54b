package quest

import (
	"github.com/goccy/go-json"
)

const ActionSubmit = "submit"

type submitPayload struct {
	URL      string   `json:"url"`
	Hashtags []string `json:"hashtags"`
	// Proof carries opaque zk-fetch proof bytes. They are stored with the
	// submission; verification is delegated to an external verifier.
	Proof []byte `json:"proof,omitempty"`
}

// Submission is one accepted content submission. Submissions are append-only
// and are not deduplicated by URL.
type Submission struct {
	Actor    string   `json:"actor"`
	URL      string   `json:"url"`
	Hashtags []string `json:"hashtags"`
	Proof    []byte   `json:"proof,omitempty"`
}

// ContentRules completes a quest once the submission count reaches
// MinSubmissions. When RequireHashtags is set, every submission must carry
// all of RequiredHashtags.
type ContentRules struct {
	MinSubmissions   int          `json:"min_submissions"`
	RequiredHashtags []string     `json:"required_hashtags"`
	RequireHashtags  bool         `json:"require_hashtags"`
	Submissions      []Submission `json:"submissions"`
}

func NewContentRules(minSubmissions int, requiredHashtags []string, requireHashtags bool) *ContentRules {
	return &ContentRules{
		MinSubmissions:   minSubmissions,
		RequiredHashtags: requiredHashtags,
		RequireHashtags:  requireHashtags,
	}
}

func (c *ContentRules) Kind() Kind { return KindContentCreator }

func (c *ContentRules) Apply(actor, action string, payload []byte) (*Outcome, error) {
	if action != ActionSubmit {
		return nil, ErrUnknownAction
	}

	var p submitPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, ErrInvalidTarget
	}
	if p.URL == "" {
		return nil, ErrInvalidTarget
	}

	if c.RequireHashtags && !containsAll(p.Hashtags, c.RequiredHashtags) {
		return nil, ErrMissingHashtags
	}

	c.Submissions = append(c.Submissions, Submission{
		Actor:    actor,
		URL:      p.URL,
		Hashtags: p.Hashtags,
		Proof:    p.Proof,
	})

	return &Outcome{URL: p.URL, Hashtags: p.Hashtags, Proof: p.Proof}, nil
}

func (c *ContentRules) ThresholdReached() bool {
	return len(c.Submissions) >= c.MinSubmissions
}

// containsAll reports whether required is a subset of submitted.
func containsAll(submitted, required []string) bool {
	tags := make(map[string]bool, len(submitted))
	for _, t := range submitted {
		tags[t] = true
	}
	for _, t := range required {
		if !tags[t] {
			return false
		}
	}
	return true
}
