//go:build integration

package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

func TestGlobalAccounting(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not initialized", func(t *testing.T) {
		_, err := testDB.GetGlobalAccounting(ctx)
		assert.True(t, db.IsNotFoundError(err))
	})
	t.Run("save before init", func(t *testing.T) {
		doc := model.NewGlobalAccountingDocument(&ledger.GlobalAccounting{})
		err := testDB.SaveGlobalAccounting(ctx, doc)
		assert.True(t, db.IsNotFoundError(err))
	})
	t.Run("round trip", func(t *testing.T) {
		g := &ledger.GlobalAccounting{
			TotalStaked:               1000,
			TotalStakeEvents:          3,
			LastObservedNativeBalance: 1100,
			TotalNativeRewardsAccrued: 100,
			LastUpdateTime:            time.Now(),
		}
		inc, err := ledger.AccrueIndex(100, 1000)
		require.NoError(t, err)
		g.NativeRewardIndex = g.NativeRewardIndex.Add(inc)

		err = testDB.InitGlobalAccounting(ctx, model.NewGlobalAccountingDocument(g))
		require.NoError(t, err)

		stored, err := testDB.GetGlobalAccounting(ctx)
		require.NoError(t, err)

		restored, err := stored.ToLedger()
		require.NoError(t, err)
		assert.Equal(t, g.TotalStaked, restored.TotalStaked)
		assert.Equal(t, g.TotalStakeEvents, restored.TotalStakeEvents)
		assert.True(t, g.NativeRewardIndex.Equal(restored.NativeRewardIndex))
	})
	t.Run("init twice", func(t *testing.T) {
		doc := model.NewGlobalAccountingDocument(&ledger.GlobalAccounting{})
		err := testDB.InitGlobalAccounting(ctx, doc)
		assert.True(t, db.IsDuplicateKeyError(err))
	})
	t.Run("save replaces", func(t *testing.T) {
		doc := model.NewGlobalAccountingDocument(&ledger.GlobalAccounting{TotalStaked: 2000})
		err := testDB.SaveGlobalAccounting(ctx, doc)
		require.NoError(t, err)

		stored, err := testDB.GetGlobalAccounting(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2000), stored.TotalStaked)
	})
}
