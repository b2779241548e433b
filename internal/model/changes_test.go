package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAccountDeltaMergesSameAccount(t *testing.T) {
	cs := &ChangeSet{}
	cs.AddAccountDelta("a1", decimal.NewFromInt(-100))
	cs.AddAccountDelta("a2", decimal.NewFromInt(50))
	cs.AddAccountDelta("a1", decimal.NewFromInt(30))

	require.Len(t, cs.AccountDeltas, 2)
	for _, d := range cs.AccountDeltas {
		switch d.AccountID {
		case "a1":
			assert.True(t, d.Delta.Equal(decimal.NewFromInt(-70)))
		case "a2":
			assert.True(t, d.Delta.Equal(decimal.NewFromInt(50)))
		default:
			t.Fatalf("unexpected account %s", d.AccountID)
		}
	}
}

func TestChangeSetIsEmpty(t *testing.T) {
	cs := &ChangeSet{}
	assert.True(t, cs.IsEmpty())

	cs.AddAccountDelta("a1", decimal.NewFromInt(1))
	assert.False(t, cs.IsEmpty())

	withDebt := &ChangeSet{NewDebt: &Debt{ID: "d1"}}
	assert.False(t, withDebt.IsEmpty())
}
