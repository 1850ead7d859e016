package repository

import (
	"testing"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestTransitionFrom(t *testing.T) {
	tests := []struct {
		name string
		next enum.FnbOrderStatus
		from []enum.FnbOrderStatus
		want []enum.FnbOrderStatus
	}{
		{"predecessors of pending", enum.FnbOrderStatusPending, nil, []enum.FnbOrderStatus{enum.FnbOrderStatusDraft}},
		{"draft to billed", enum.FnbOrderStatusBilled, []enum.FnbOrderStatus{enum.FnbOrderStatusDraft}, []enum.FnbOrderStatus{enum.FnbOrderStatusDraft}},
		{"paid to paid dropped", enum.FnbOrderStatusPaid,
			[]enum.FnbOrderStatus{enum.FnbOrderStatusBilled, enum.FnbOrderStatusPaid},
			[]enum.FnbOrderStatus{enum.FnbOrderStatusBilled}},
		{"cancelled cannot be billed", enum.FnbOrderStatusBilled, []enum.FnbOrderStatus{enum.FnbOrderStatusCancelled}, []enum.FnbOrderStatus{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transitionFrom(tt.next, tt.from...))
		})
	}

	assert.Equal(t, []enum.SessionStatus{enum.SessionStatusActive}, transitionFrom(enum.SessionStatusCompleted))
}
