// internal/services/consignment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlementForEvenSplit(t *testing.T) {
	settlement := SettlementFor(100.00, 70)

	assert.Equal(t, 100.00, settlement.SoldPrice)
	assert.Equal(t, 70.00, settlement.ConsignorShare)
	assert.Equal(t, 30.00, settlement.HouseShare)
	assert.Equal(t, 70.0, settlement.SplitPercent)
}

func TestSettlementForRoundsToCents(t *testing.T) {
	// 33.33 * 70% = 23.331, rounds down to 23.33; the house absorbs
	// the remainder.
	settlement := SettlementFor(33.33, 70)

	assert.Equal(t, 23.33, settlement.ConsignorShare)
	assert.InDelta(t, 10.00, settlement.HouseShare, 0.001)
}

func TestSettlementForSharesSumToSoldPrice(t *testing.T) {
	cases := []struct {
		soldPrice float64
		split     float64
	}{
		{100.00, 70},
		{33.33, 70},
		{999.99, 85.5},
		{0.01, 50},
		{1250.00, 0},
		{1250.00, 100},
	}

	for _, c := range cases {
		settlement := SettlementFor(c.soldPrice, c.split)
		assert.InDelta(t, c.soldPrice, settlement.ConsignorShare+settlement.HouseShare, 0.001)
		assert.GreaterOrEqual(t, settlement.ConsignorShare, 0.0)
	}
}

func TestSettlementForBoundarySplits(t *testing.T) {
	allHouse := SettlementFor(200.00, 0)
	assert.Equal(t, 0.00, allHouse.ConsignorShare)
	assert.Equal(t, 200.00, allHouse.HouseShare)

	allConsignor := SettlementFor(200.00, 100)
	assert.Equal(t, 200.00, allConsignor.ConsignorShare)
	assert.Equal(t, 0.00, allConsignor.HouseShare)
}
