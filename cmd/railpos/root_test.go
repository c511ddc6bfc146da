package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleItem(t *testing.T) {
	item, err := parseSaleItem("1801:2")
	require.NoError(t, err)
	assert.EqualValues(t, 1801, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Nil(t, item.UnitPrice)

	item, err = parseSaleItem("1801:1@250.50")
	require.NoError(t, err)
	require.NotNil(t, item.UnitPrice)
	assert.Equal(t, "250.50", item.UnitPrice.StringFixed(2))

	for _, raw := range []string{"1801", "abc:1", "1801:x", "1801:1@cheap"} {
		_, err := parseSaleItem(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("", time.UTC)
	require.NoError(t, err)
	assert.True(t, day.IsZero())

	day, err = parseDay("2024-02-10", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), day)

	_, err = parseDay("10/02/2024", time.UTC)
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "sale", "cancel", "pay", "sweep", "overdue", "debt", "receipt", "next-number", "worker"} {
		assert.True(t, names[want], want)
	}
}
