package quest

import (
	"github.com/goccy/go-json"
)

const ActionVisit = "visit"

type visitPayload struct {
	Location string `json:"location"`
}

// LocationRules completes a quest once every required location has been
// visited. Visits are tracked per quest, so the set can be covered by any
// mix of actors, in any order.
type LocationRules struct {
	Required []string        `json:"required"`
	Visited  map[string]bool `json:"visited"`
}

func NewLocationRules(required []string) *LocationRules {
	return &LocationRules{
		Required: required,
		Visited:  make(map[string]bool),
	}
}

func (l *LocationRules) Kind() Kind { return KindLocation }

func (l *LocationRules) Apply(actor, action string, payload []byte) (*Outcome, error) {
	if action != ActionVisit {
		return nil, ErrUnknownAction
	}

	var p visitPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, ErrInvalidTarget
	}

	if !l.isRequired(p.Location) {
		return nil, ErrInvalidTarget
	}
	if l.Visited[p.Location] {
		return nil, ErrDuplicateInteraction
	}

	if l.Visited == nil {
		l.Visited = make(map[string]bool)
	}
	l.Visited[p.Location] = true

	return &Outcome{Location: p.Location}, nil
}

func (l *LocationRules) ThresholdReached() bool {
	for _, loc := range l.Required {
		if !l.Visited[loc] {
			return false
		}
	}
	return true
}

func (l *LocationRules) isRequired(location string) bool {
	for _, loc := range l.Required {
		if loc == location {
			return true
		}
	}
	return false
}
