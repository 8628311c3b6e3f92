package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"To Do", StatusToDo, false},
		{"  In Review ", StatusInReview, false},
		{"Done", StatusDone, false},
		{"done", "", true},
		{"DONE", "", true},
		{"", "", true},
		{"Closed", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStatus(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" High")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestApplyStatus(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	t.Run("done stamps completed-at", func(t *testing.T) {
		tk := &Ticket{Status: StatusInReview}
		prior := tk.ApplyStatus(StatusDone, now)
		assert.Equal(t, StatusInReview, prior)
		require.NotNil(t, tk.CompletedAt)
		assert.Equal(t, now, *tk.CompletedAt)
	})

	t.Run("done twice keeps first stamp", func(t *testing.T) {
		first := now.Add(-time.Hour)
		tk := &Ticket{Status: StatusDone, CompletedAt: &first}
		tk.ApplyStatus(StatusDone, now)
		assert.Equal(t, first, *tk.CompletedAt)
	})

	t.Run("leaving done clears completed-at", func(t *testing.T) {
		tk := &Ticket{Status: StatusDone, CompletedAt: &now}
		prior := tk.ApplyStatus(StatusToDo, now)
		assert.Equal(t, StatusDone, prior)
		assert.Nil(t, tk.CompletedAt)
	})
}
