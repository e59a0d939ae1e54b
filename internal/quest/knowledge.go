package quest

import (
	"strconv"

	"github.com/goccy/go-json"
)

const ActionAnswer = "answer"

type answerPayload struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

// KnowledgeRules completes a quest once every question has been answered
// correctly. A question is marked answered for an actor whether or not the
// answer was correct; an incorrect answer cannot be retried by that actor.
type KnowledgeRules struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`

	// Answered tracks per-actor answered question indexes (keys are decimal
	// indexes; JSON objects cannot key on ints).
	Answered map[string]map[string]bool `json:"answered"`

	// CorrectlyAnswered tracks which question indexes have been answered
	// correctly by anyone; completion requires all of them.
	CorrectlyAnswered map[string]bool `json:"correctly_answered"`
}

func NewKnowledgeRules(questions, answers []string) *KnowledgeRules {
	return &KnowledgeRules{
		Questions:         questions,
		Answers:           answers,
		Answered:          make(map[string]map[string]bool),
		CorrectlyAnswered: make(map[string]bool),
	}
}

func (k *KnowledgeRules) Kind() Kind { return KindProofOfKnowledge }

func (k *KnowledgeRules) Apply(actor, action string, payload []byte) (*Outcome, error) {
	if action != ActionAnswer {
		return nil, ErrUnknownAction
	}

	var p answerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, ErrInvalidTarget
	}
	if p.Question < 0 || p.Question >= len(k.Questions) {
		return nil, ErrInvalidTarget
	}

	idx := strconv.Itoa(p.Question)
	if k.Answered[actor][idx] {
		return nil, ErrDuplicateInteraction
	}

	if k.Answered == nil {
		k.Answered = make(map[string]map[string]bool)
	}
	if k.Answered[actor] == nil {
		k.Answered[actor] = make(map[string]bool)
	}
	k.Answered[actor][idx] = true

	correct := p.Answer == k.Answers[p.Question]
	if correct {
		if k.CorrectlyAnswered == nil {
			k.CorrectlyAnswered = make(map[string]bool)
		}
		k.CorrectlyAnswered[idx] = true
	}

	return &Outcome{QuestionIndex: p.Question, Correct: correct}, nil
}

func (k *KnowledgeRules) ThresholdReached() bool {
	for i := range k.Questions {
		if !k.CorrectlyAnswered[strconv.Itoa(i)] {
			return false
		}
	}
	return len(k.Questions) > 0
}
