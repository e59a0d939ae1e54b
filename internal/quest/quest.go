// Package quest implements the quest-instance state machine shared by the
// location, content-creator and proof-of-knowledge variants. The skeleton
// (active/completed/expired checks, atomic completion on the triggering
// interaction) lives here; variants supply only decode-and-evaluate.
package quest

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type Kind string

const (
	KindLocation         Kind = "location"
	KindContentCreator   Kind = "content_creator"
	KindProofOfKnowledge Kind = "proof_of_knowledge"
)

var (
	ErrNotActive            = errors.New("quest is not active")
	ErrExpired              = errors.New("quest has expired")
	ErrDuplicateInteraction = errors.New("interaction already recorded")
	ErrInvalidTarget        = errors.New("invalid interaction target")
	ErrMissingHashtags      = errors.New("required hashtags are missing")
	ErrUnknownAction        = errors.New("unknown action for quest type")
)

// State is the variant-independent lifecycle of one quest instance.
// Active and Completed are mutually exclusive; Expired is a data-level
// deadline checked on each interaction, not a scheduled event.
type State struct {
	QuestID   int64     `json:"quest_id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Completed bool      `json:"completed"`
	ExpiresAt time.Time `json:"expires_at"`
	Initiator string    `json:"initiator"`
}

// Outcome describes what a single accepted interaction did. Only the fields
// relevant to the variant are set.
type Outcome struct {
	QuestID int64  `json:"quest_id"`
	Actor   string `json:"actor"`
	Action  string `json:"action"`

	Location      string   `json:"location,omitempty"`
	URL           string   `json:"url,omitempty"`
	Hashtags      []string `json:"hashtags,omitempty"`
	Proof         []byte   `json:"proof,omitempty"`
	QuestionIndex int      `json:"question_index,omitempty"`
	Correct       bool     `json:"correct,omitempty"`

	// CompletedQuest reports that this interaction satisfied the completion
	// threshold and flipped the quest to Completed.
	CompletedQuest bool `json:"completed_quest"`
}

// Rules is the variant-specific half of an instance: it decodes an action
// payload, records the interaction in its progress state, and reports when
// the completion threshold is reached.
type Rules interface {
	Kind() Kind
	Apply(actor, action string, payload []byte) (*Outcome, error)
	ThresholdReached() bool
}

// Instance combines lifecycle state with variant rules.
type Instance struct {
	State State
	Rules Rules
}

// Interact runs one interaction through the shared skeleton. The completion
// transition is atomic with the triggering interaction: the call that
// satisfies the threshold clears Active and sets Completed in the same step.
func (i *Instance) Interact(now time.Time, actor, action string, payload []byte) (*Outcome, error) {
	if !i.State.Active || i.State.Completed {
		return nil, ErrNotActive
	}
	if now.After(i.State.ExpiresAt) {
		return nil, ErrExpired
	}

	out, err := i.Rules.Apply(actor, action, payload)
	if err != nil {
		return nil, err
	}
	out.QuestID = i.State.QuestID
	out.Actor = actor
	out.Action = action

	if i.Rules.ThresholdReached() {
		i.State.Active = false
		i.State.Completed = true
		out.CompletedQuest = true
	}

	return out, nil
}

// ForceComplete marks an active quest completed without further interactions.
func (i *Instance) ForceComplete() error {
	if !i.State.Active || i.State.Completed {
		return ErrNotActive
	}
	i.State.Active = false
	i.State.Completed = true
	return nil
}

// MarshalRules serializes variant rules (configuration and progress) for
// storage alongside the instance row.
func MarshalRules(r Rules) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRules restores variant rules from their stored form.
func UnmarshalRules(kind Kind, data []byte) (Rules, error) {
	var r Rules
	switch kind {
	case KindLocation:
		r = &LocationRules{}
	case KindContentCreator:
		r = &ContentRules{}
	case KindProofOfKnowledge:
		r = &KnowledgeRules{}
	default:
		return nil, fmt.Errorf("unknown quest kind %q", kind)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	return r, nil
}
