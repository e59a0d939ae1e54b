package quest

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeInstance(t *testing.T, rules Rules) *Instance {
	t.Helper()
	return &Instance{
		State: State{
			QuestID:   1,
			Kind:      rules.Kind(),
			Active:    true,
			ExpiresAt: time.Now().Add(24 * time.Hour),
			Initiator: "0xadmin",
		},
		Rules: rules,
	}
}

func visit(location string) []byte {
	b, _ := json.Marshal(visitPayload{Location: location})
	return b
}

func TestInstance_InteractGuards(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		state    State
		expected error
	}{
		{
			name:     "inactive quest",
			state:    State{QuestID: 1, Active: false, ExpiresAt: now.Add(time.Hour)},
			expected: ErrNotActive,
		},
		{
			name:     "completed quest",
			state:    State{QuestID: 1, Active: false, Completed: true, ExpiresAt: now.Add(time.Hour)},
			expected: ErrNotActive,
		},
		{
			name:     "expired quest",
			state:    State{QuestID: 1, Active: true, ExpiresAt: now.Add(-time.Minute)},
			expected: ErrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := &Instance{State: tt.state, Rules: NewLocationRules([]string{"A"})}
			_, err := inst.Interact(now, "0xuser", ActionVisit, visit("A"))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestInstance_ExpirationCheckedBeforePayload(t *testing.T) {
	inst := activeInstance(t, NewLocationRules([]string{"A"}))
	inst.State.ExpiresAt = time.Now().Add(-time.Hour)

	// An expired quest rejects even an otherwise invalid payload with Expired.
	_, err := inst.Interact(time.Now(), "0xuser", ActionVisit, []byte("not json"))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestInstance_ForceComplete(t *testing.T) {
	inst := activeInstance(t, NewLocationRules([]string{"A", "B"}))

	require.NoError(t, inst.ForceComplete())
	assert.False(t, inst.State.Active)
	assert.True(t, inst.State.Completed)

	assert.ErrorIs(t, inst.ForceComplete(), ErrNotActive)
}

func TestInstance_NoInteractionAfterCompletion(t *testing.T) {
	inst := activeInstance(t, NewLocationRules([]string{"A"}))

	out, err := inst.Interact(time.Now(), "0xuser", ActionVisit, visit("A"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)

	_, err = inst.Interact(time.Now(), "0xuser", ActionVisit, visit("A"))
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestUnmarshalRules_RestoresProgress(t *testing.T) {
	rules := NewLocationRules([]string{"A", "B"})
	inst := activeInstance(t, rules)

	_, err := inst.Interact(time.Now(), "0xuser", ActionVisit, visit("A"))
	require.NoError(t, err)

	data, err := MarshalRules(rules)
	require.NoError(t, err)

	restored, err := UnmarshalRules(KindLocation, data)
	require.NoError(t, err)

	// The restored progress still rejects the recorded visit and still needs B.
	inst = activeInstance(t, restored)
	_, err = inst.Interact(time.Now(), "0xuser", ActionVisit, visit("A"))
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	out, err := inst.Interact(time.Now(), "0xuser", ActionVisit, visit("B"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)
}

func TestUnmarshalRules_UnknownKind(t *testing.T) {
	_, err := UnmarshalRules(Kind("bogus"), []byte("{}"))
	assert.Error(t, err)
}
