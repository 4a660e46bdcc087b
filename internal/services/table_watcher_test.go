package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/domain"
	"tillpoint/internal/services"
)

func TestTableWatcher_DeliversSnapshots(t *testing.T) {
	e := newEngine(t)
	tblID, err := e.tables.Add("T1", nil)
	require.NoError(t, err)
	require.NoError(t, e.tables.SaveCart(tblID, `[{"productId":"p"}]`))

	snapshots := make(chan []domain.Table, 1)
	w := services.NewTableWatcher(e.tables, time.Second, func(tables []domain.Table) {
		select {
		case snapshots <- tables:
		default:
		}
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	select {
	case tables := <-snapshots:
		require.Len(t, tables, 1)
		assert.Equal(t, domain.TableOccupied, tables[0].Status)
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot within three poll intervals")
	}
}
