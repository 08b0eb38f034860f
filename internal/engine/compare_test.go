package engine

import (
	"context"
	"testing"

	"github.com/iwvelando/mortgage-engine/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompare(t *testing.T) {
	cfg := baseConfig()
	cfg.Prepayments = []loans.Prepayment{{Month: 12, Amount: 20000, Frequency: loans.FrequencyUnique}}

	comparison, err := Compare(context.Background(), zap.NewNop(), cfg)
	require.NoError(t, err)

	assert.Equal(t, ReduceTerm, comparison.ReduceTerm.Strategy)
	assert.Equal(t, ReducePayment, comparison.ReducePayment.Strategy)
	assert.Equal(t, 203, comparison.ReduceTerm.Months)
	assert.Equal(t, 240, comparison.ReducePayment.Months)
	assert.Equal(t, 37, comparison.ReduceTerm.SavedMonths)
	assert.Zero(t, comparison.ReducePayment.SavedMonths)
	assert.Greater(t, comparison.ReduceTerm.SavedInterest, comparison.ReducePayment.SavedInterest)
	assert.InDelta(t, 193053.98, comparison.ReduceTerm.TotalInterest, 0.01)
	assert.InDelta(t, 238141.40, comparison.ReducePayment.TotalInterest, 0.01)

	assert.Equal(t, 12, comparison.PrepaymentMonth)
	require.NotNil(t, comparison.PostPrepaymentInstallment)
	assert.InDelta(t, 2057.01, *comparison.PostPrepaymentInstallment, 0.01)
}

func TestCompareWithoutPrepayments(t *testing.T) {
	comparison, err := Compare(context.Background(), nil, baseConfig())
	require.NoError(t, err)

	assert.Zero(t, comparison.PrepaymentMonth)
	assert.Nil(t, comparison.PostPrepaymentInstallment)
	assert.Equal(t, comparison.ReduceTerm.TotalInterest, comparison.ReducePayment.TotalInterest)
}

func TestCompareCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compare(ctx, zap.NewNop(), baseConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
