package cart

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyCart(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{})

	c, err := store.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Zero(t, c.ShowtimeID)
	assert.Empty(t, c.SeatIDs)
	assert.Empty(t, c.Snacks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadFullCart(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"showtime_id": "42",
		"seats":       `["A1","K4"]`,
		"snack:1":     "2",
		"snack:3":     "1",
	})

	c, err := store.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), c.ShowtimeID)
	assert.Equal(t, []string{"A1", "K4"}, c.SeatIDs)
	assert.Equal(t, map[uint64]int{1: 2, 3: 1}, c.Snacks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRejectsCorruptSeatList(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"seats": "not-json",
	})

	_, err := store.Load(context.Background(), "sess-1")
	assert.Error(t, err)
}

func TestSetShowtimeDropsSeats(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectTxPipeline()
	mock.ExpectHSet("cart:sess-1", "showtime_id", "42").SetVal(1)
	mock.ExpectHDel("cart:sess-1", "seats").SetVal(1)
	mock.ExpectExpire("cart:sess-1", time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, store.SetShowtime(context.Background(), "sess-1", 42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSeats(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectTxPipeline()
	mock.ExpectHSet("cart:sess-1", "seats", `["A1","B2"]`).SetVal(1)
	mock.ExpectExpire("cart:sess-1", time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, store.SaveSeats(context.Background(), "sess-1", []string{"A1", "B2"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSnackQty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectTxPipeline()
	mock.ExpectHSet("cart:sess-1", "snack:7", "3").SetVal(1)
	mock.ExpectExpire("cart:sess-1", time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, store.SetSnackQty(context.Background(), "sess-1", 7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSnackQtyZeroRemovesLine(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectTxPipeline()
	mock.ExpectHDel("cart:sess-1", "snack:7").SetVal(1)
	mock.ExpectExpire("cart:sess-1", time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, store.SetSnackQty(context.Background(), "sess-1", 7, 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, time.Minute)

	mock.ExpectDel("cart:sess-1").SetVal(1)

	require.NoError(t, store.Clear(context.Background(), "sess-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
