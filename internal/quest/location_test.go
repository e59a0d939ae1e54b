package quest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRules_Visit(t *testing.T) {
	tests := []struct {
		name        string
		required    []string
		visits      []string
		expectedErr error
	}{
		{
			name:     "required location accepted",
			required: []string{"Location1", "Location2"},
			visits:   []string{"Location1"},
		},
		{
			name:        "unknown location rejected",
			required:    []string{"Location1"},
			visits:      []string{"Elsewhere"},
			expectedErr: ErrInvalidTarget,
		},
		{
			name:        "second visit to same location rejected",
			required:    []string{"Location1", "Location2"},
			visits:      []string{"Location1", "Location1"},
			expectedErr: ErrDuplicateInteraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := activeInstance(t, NewLocationRules(tt.required))

			var err error
			for _, loc := range tt.visits {
				_, err = inst.Interact(time.Now(), "0xuser", ActionVisit, visit(loc))
			}
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocationRules_CompletesOnSecondDistinctVisit(t *testing.T) {
	orders := [][]string{
		{"A", "B"},
		{"B", "A"},
	}

	for _, order := range orders {
		inst := activeInstance(t, NewLocationRules([]string{"A", "B"}))

		out, err := inst.Interact(time.Now(), "0xuser", ActionVisit, visit(order[0]))
		require.NoError(t, err)
		assert.False(t, out.CompletedQuest)
		assert.True(t, inst.State.Active)

		out, err = inst.Interact(time.Now(), "0xuser", ActionVisit, visit(order[1]))
		require.NoError(t, err)
		assert.True(t, out.CompletedQuest)
		assert.True(t, inst.State.Completed)
		assert.False(t, inst.State.Active)
	}
}

func TestLocationRules_VisitsSharedAcrossActors(t *testing.T) {
	inst := activeInstance(t, NewLocationRules([]string{"A", "B"}))

	_, err := inst.Interact(time.Now(), "0xalice", ActionVisit, visit("A"))
	require.NoError(t, err)

	// Visits are per quest: a second actor cannot re-visit A...
	_, err = inst.Interact(time.Now(), "0xbob", ActionVisit, visit("A"))
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	// ...but can supply the remaining location and complete the quest.
	out, err := inst.Interact(time.Now(), "0xbob", ActionVisit, visit("B"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)
}

func TestLocationRules_UnknownAction(t *testing.T) {
	inst := activeInstance(t, NewLocationRules([]string{"A"}))

	_, err := inst.Interact(time.Now(), "0xuser", "submit", visit("A"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}
