package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlens-dev/finlens/internal/model"
)

func TestReadBeforeAnyImport(t *testing.T) {
	svc := NewService(t.TempDir())
	txns, err := svc.Read()
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestReplaceAndRead(t *testing.T) {
	svc := NewService(t.TempDir())

	first := []model.Tx{
		{ID: "2024-01#0001", Date: date(2024, 1, 5), RawDate: "2024-01-05", Amount: -100000, CategoryParent: "Food", CategoryChild: "Lunch", Payer: "You"},
	}
	require.NoError(t, svc.Replace(first))

	got, err := svc.Read()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01#0001", got[0].ID)
}

func TestReplaceIsWholesale(t *testing.T) {
	svc := NewService(t.TempDir())

	require.NoError(t, svc.Replace([]model.Tx{
		{ID: "2024-01#0001", Date: date(2024, 1, 5), RawDate: "2024-01-05", Amount: -1000, CategoryParent: "Food", CategoryChild: "Lunch", Payer: "You"},
		{ID: "2024-01#0002", Date: date(2024, 1, 6), RawDate: "2024-01-06", Amount: -2000, CategoryParent: "Food", CategoryChild: "Dinner", Payer: "You"},
	}))

	require.NoError(t, svc.Replace([]model.Tx{
		{ID: "2024-02#0001", Date: date(2024, 2, 1), RawDate: "2024-02-01", Amount: -3000, CategoryParent: "Food", CategoryChild: "Coffee", Payer: "You"},
	}))

	got, err := svc.Read()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02#0001", got[0].ID)
}

func TestReplaceEmptySet(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.Replace(nil))

	got, err := svc.Read()
	require.NoError(t, err)
	assert.Empty(t, got)
}
