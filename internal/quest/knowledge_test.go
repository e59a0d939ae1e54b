package quest

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(question int, text string) []byte {
	b, _ := json.Marshal(answerPayload{Question: question, Answer: text})
	return b
}

func newKnowledgeInstance(t *testing.T) (*Instance, *KnowledgeRules) {
	t.Helper()
	rules := NewKnowledgeRules(
		[]string{"Question1", "Question2"},
		[]string{"Answer1", "Answer2"},
	)
	return activeInstance(t, rules), rules
}

func TestKnowledgeRules_AnswerRecorded(t *testing.T) {
	inst, rules := newKnowledgeInstance(t)

	out, err := inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "Answer1"))
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, 0, out.QuestionIndex)
	assert.True(t, rules.Answered["0xuser"]["0"])
}

func TestKnowledgeRules_DuplicateAnswerRejected(t *testing.T) {
	inst, _ := newKnowledgeInstance(t)

	_, err := inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "Answer1"))
	require.NoError(t, err)

	_, err = inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "Answer1"))
	assert.ErrorIs(t, err, ErrDuplicateInteraction)
}

func TestKnowledgeRules_IndexOutOfRange(t *testing.T) {
	inst, _ := newKnowledgeInstance(t)

	for _, idx := range []int{-1, 2} {
		_, err := inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(idx, "whatever"))
		assert.ErrorIs(t, err, ErrInvalidTarget)
	}
}

func TestKnowledgeRules_IncorrectAnswerMarksWithoutCounting(t *testing.T) {
	inst, rules := newKnowledgeInstance(t)

	out, err := inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "wrong"))
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.False(t, out.CompletedQuest)

	// Marked answered regardless of correctness; the same actor cannot retry.
	assert.True(t, rules.Answered["0xuser"]["0"])
	_, err = inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "Answer1"))
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	// Answering the rest correctly still leaves the quest incomplete.
	_, err = inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(1, "Answer2"))
	require.NoError(t, err)
	assert.True(t, inst.State.Active)
	assert.False(t, inst.State.Completed)
}

func TestKnowledgeRules_CompletesWhenAllAnsweredCorrectly(t *testing.T) {
	inst, _ := newKnowledgeInstance(t)

	out, err := inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(0, "Answer1"))
	require.NoError(t, err)
	assert.False(t, out.CompletedQuest)

	out, err = inst.Interact(time.Now(), "0xuser", ActionAnswer, answer(1, "Answer2"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)
	assert.True(t, inst.State.Completed)
	assert.False(t, inst.State.Active)
}

func TestKnowledgeRules_AnotherActorCanRecoverQuest(t *testing.T) {
	inst, _ := newKnowledgeInstance(t)

	_, err := inst.Interact(time.Now(), "0xalice", ActionAnswer, answer(0, "wrong"))
	require.NoError(t, err)

	// A different actor still has their own attempt at question 0.
	_, err = inst.Interact(time.Now(), "0xbob", ActionAnswer, answer(0, "Answer1"))
	require.NoError(t, err)

	out, err := inst.Interact(time.Now(), "0xbob", ActionAnswer, answer(1, "Answer2"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)
}

func TestKnowledgeRules_NoQuestionsNeverCompletes(t *testing.T) {
	rules := NewKnowledgeRules(nil, nil)
	assert.False(t, rules.ThresholdReached())
}
