package quest

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submit(url string, hashtags ...string) []byte {
	b, _ := json.Marshal(submitPayload{URL: url, Hashtags: hashtags})
	return b
}

func TestContentRules_MinSubmissionsThreshold(t *testing.T) {
	rules := NewContentRules(2, []string{"#test"}, true)
	inst := activeInstance(t, rules)

	out, err := inst.Interact(time.Now(), "0xuser", ActionSubmit, submit("http://example1.com", "#test"))
	require.NoError(t, err)
	assert.False(t, out.CompletedQuest)
	assert.True(t, inst.State.Active)

	out, err = inst.Interact(time.Now(), "0xuser", ActionSubmit, submit("http://example2.com", "#test"))
	require.NoError(t, err)
	assert.True(t, out.CompletedQuest)
	assert.True(t, inst.State.Completed)
	assert.Len(t, rules.Submissions, 2)
}

func TestContentRules_MissingHashtags(t *testing.T) {
	tests := []struct {
		name        string
		required    []string
		enforce     bool
		submitted   []string
		expectedErr error
	}{
		{
			name:        "missing required hashtag",
			required:    []string{"#test"},
			enforce:     true,
			submitted:   []string{"#wrong"},
			expectedErr: ErrMissingHashtags,
		},
		{
			name:        "subset of required missing",
			required:    []string{"#example", "#test"},
			enforce:     true,
			submitted:   []string{"#example"},
			expectedErr: ErrMissingHashtags,
		},
		{
			name:      "all required present plus extras",
			required:  []string{"#example", "#test"},
			enforce:   true,
			submitted: []string{"#test", "#extra", "#example"},
		},
		{
			name:      "hashtags not enforced",
			required:  []string{"#test"},
			enforce:   false,
			submitted: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := NewContentRules(3, tt.required, tt.enforce)
			inst := activeInstance(t, rules)

			_, err := inst.Interact(time.Now(), "0xuser", ActionSubmit, submit("http://example.com", tt.submitted...))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, rules.Submissions, "rejected submission must not be recorded")
			} else {
				assert.NoError(t, err)
				assert.Len(t, rules.Submissions, 1)
			}
		})
	}
}

func TestContentRules_SubmissionsNotDedupedByURL(t *testing.T) {
	rules := NewContentRules(3, nil, false)
	inst := activeInstance(t, rules)

	for i := 0; i < 2; i++ {
		_, err := inst.Interact(time.Now(), "0xuser", ActionSubmit, submit("http://example.com"))
		require.NoError(t, err)
	}

	assert.Len(t, rules.Submissions, 2)
}

func TestContentRules_ProofStoredOpaquely(t *testing.T) {
	rules := NewContentRules(1, nil, false)
	inst := activeInstance(t, rules)

	proof := []byte(`{"claim":"zkfetch"}`)
	payload, err := json.Marshal(submitPayload{URL: "http://example.com", Proof: proof})
	require.NoError(t, err)

	out, err := inst.Interact(time.Now(), "0xuser", ActionSubmit, payload)
	require.NoError(t, err)
	assert.Equal(t, proof, out.Proof)
	assert.Equal(t, proof, rules.Submissions[0].Proof)
}

func TestContentRules_EmptyURLRejected(t *testing.T) {
	inst := activeInstance(t, NewContentRules(1, nil, false))

	_, err := inst.Interact(time.Now(), "0xuser", ActionSubmit, submit(""))
	assert.ErrorIs(t, err, ErrInvalidTarget)
}
