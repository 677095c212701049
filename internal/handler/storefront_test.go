package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aframi/cinema-storefront/internal/cart"
	"github.com/aframi/cinema-storefront/internal/repository"
)

const cartTTL = 30 * time.Minute

// storefrontEnv wires a StorefrontHandler over mocked MySQL and Redis.
type storefrontEnv struct {
	h       *StorefrontHandler
	sqlMock sqlmock.Sqlmock
	rdMock  redismock.ClientMock
	e       *echo.Echo
}

func newStorefrontEnv(t *testing.T) *storefrontEnv {
	t.Helper()
	db, sqlM, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, rdM := redismock.NewClientMock()
	h := NewStorefrontHandler(
		repository.NewMovieRepo(db),
		repository.NewTheaterRepo(db),
		repository.NewShowtimeRepo(db),
		repository.NewSnackRepo(db),
		cart.NewStore(rdb, cartTTL),
		"", // no broker in tests; checkout handoff becomes a no-op
	)
	return &storefrontEnv{h: h, sqlMock: sqlM, rdMock: rdM, e: echo.New()}
}

// expectShowtimeLayout queues the three catalog queries behind seat map
// construction: the showtime, its screen geometry and the sold seats.
func (env *storefrontEnv) expectShowtimeLayout(showtimeID, screenID uint64, seatRows, perRow int, sold ...string) {
	env.sqlMock.ExpectQuery("SELECT id, movie_id, screen_id, starts_at").
		WithArgs(showtimeID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "screen_id", "starts_at", "price_standard", "price_premium", "price_vip"}).
			AddRow(showtimeID, 1, screenID, time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC), "500.00", "700.00", "900.00"))
	env.sqlMock.ExpectQuery("SELECT id, theater_id, name, screen_type, seat_rows, seats_per_row").
		WithArgs(screenID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "theater_id", "name", "screen_type", "seat_rows", "seats_per_row"}).
			AddRow(screenID, 1, "Screen 1", "2D", seatRows, perRow))
	soldRows := sqlmock.NewRows([]string{"seat_id"})
	for _, s := range sold {
		soldRows.AddRow(s)
	}
	env.sqlMock.ExpectQuery("SELECT seat_id FROM sold_seats").
		WithArgs(showtimeID).
		WillReturnRows(soldRows)
}

func (env *storefrontEnv) newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set("session_id", "sess-1")
	return c, rec
}

func (env *storefrontEnv) verify(t *testing.T) {
	t.Helper()
	require.NoError(t, env.sqlMock.ExpectationsWereMet())
	require.NoError(t, env.rdMock.ExpectationsWereMet())
}

type toggleResponse struct {
	Accepted bool `json:"accepted"`
	Count    int  `json:"count"`
	Selected []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"selected"`
}

func TestToggleSeat_Select(t *testing.T) {
	env := newStorefrontEnv(t)
	env.expectShowtimeLayout(5, 3, 6, 8)
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{"showtime_id": "5"})
	env.rdMock.ExpectTxPipeline()
	env.rdMock.ExpectHSet("cart:sess-1", "seats", `["A1"]`).SetVal(1)
	env.rdMock.ExpectExpire("cart:sess-1", cartTTL).SetVal(true)
	env.rdMock.ExpectTxPipelineExec()

	c, rec := env.newContext(http.MethodPost, `{"seat_id":"A1"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.h.ToggleSeat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp toggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Selected, 1)
	assert.Equal(t, "A1", resp.Selected[0].ID)
	assert.Equal(t, "selected", resp.Selected[0].Status)
	env.verify(t)
}

func TestToggleSeat_BookedSeatRejected(t *testing.T) {
	env := newStorefrontEnv(t)
	env.expectShowtimeLayout(5, 3, 6, 8, "A1")
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{"showtime_id": "5"})
	// No seat save: a rejected toggle must not touch the cart.

	c, rec := env.newContext(http.MethodPost, `{"seat_id":"A1"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.h.ToggleSeat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp toggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Equal(t, 0, resp.Count)
	env.verify(t)
}

func TestToggleSeat_SwitchingShowtimeDropsSeats(t *testing.T) {
	env := newStorefrontEnv(t)
	env.expectShowtimeLayout(5, 3, 6, 8)
	// Cart still points at showtime 4 with a stale selection.
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"showtime_id": "4",
		"seats":       `["B2"]`,
	})
	env.rdMock.ExpectTxPipeline()
	env.rdMock.ExpectHSet("cart:sess-1", "showtime_id", "5").SetVal(1)
	env.rdMock.ExpectHDel("cart:sess-1", "seats").SetVal(1)
	env.rdMock.ExpectExpire("cart:sess-1", cartTTL).SetVal(true)
	env.rdMock.ExpectTxPipelineExec()
	env.rdMock.ExpectTxPipeline()
	env.rdMock.ExpectHSet("cart:sess-1", "seats", `["A1"]`).SetVal(1)
	env.rdMock.ExpectExpire("cart:sess-1", cartTTL).SetVal(true)
	env.rdMock.ExpectTxPipelineExec()

	c, rec := env.newContext(http.MethodPost, `{"seat_id":"A1"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.h.ToggleSeat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp toggleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, 1, resp.Count)
	env.verify(t)
}

func TestGetSeatMap_OverlaysSelection(t *testing.T) {
	env := newStorefrontEnv(t)
	env.expectShowtimeLayout(5, 3, 6, 8, "A2")
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"showtime_id": "5",
		"seats":       `["A1"]`,
	})

	c, rec := env.newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.h.GetSeatMap(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RowCount int `json:"row_count"`
		Rows     [][]struct {
			ID     string `json:"id"`
			Class  string `json:"class"`
			Status string `json:"status"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 6, resp.RowCount)
	require.Len(t, resp.Rows, 6)

	front := resp.Rows[0]
	assert.Equal(t, "A1", front[0].ID)
	assert.Equal(t, "selected", front[0].Status)
	assert.Equal(t, "booked", front[1].Status)
	assert.Equal(t, "available", front[2].Status)
	assert.Equal(t, "standard", front[0].Class)
	assert.Equal(t, "vip", resp.Rows[5][0].Class)
	env.verify(t)
}

// orderBody decodes the priced order fields every order endpoint emits.
type orderBody struct {
	Order struct {
		TicketsSubtotal string `json:"tickets_subtotal"`
		AddOnsSubtotal  string `json:"add_ons_subtotal"`
		Subtotal        string `json:"subtotal"`
		ServiceFee      string `json:"service_fee"`
		GrandTotal      string `json:"grand_total"`
	} `json:"order"`
}

func assertAmount(t *testing.T, want, got string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	g := decimal.RequireFromString(got)
	assert.True(t, w.Equal(g), "want %s, got %s", want, got)
}

func TestGetOrder_PricesCartAgainstCatalog(t *testing.T) {
	env := newStorefrontEnv(t)
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"showtime_id": "5",
		"seats":       `["A1"]`,
		"snack:2":     "2",
	})
	env.expectShowtimeLayout(5, 3, 6, 8)
	env.sqlMock.ExpectQuery("SELECT id, name, unit_price, image_url FROM snacks WHERE id IN").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit_price", "image_url"}).
			AddRow(2, "Soda", "250.00", ""))

	c, rec := env.newContext(http.MethodGet, "")
	require.NoError(t, env.h.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assertAmount(t, "500", resp.Order.TicketsSubtotal)
	assertAmount(t, "500", resp.Order.AddOnsSubtotal)
	assertAmount(t, "1000", resp.Order.Subtotal)
	assertAmount(t, "100", resp.Order.ServiceFee)
	assertAmount(t, "1100", resp.Order.GrandTotal)
	env.verify(t)
}

func TestGetOrder_EmptyCartIsZero(t *testing.T) {
	env := newStorefrontEnv(t)
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{})

	c, rec := env.newContext(http.MethodGet, "")
	require.NoError(t, env.h.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assertAmount(t, "0", resp.Order.GrandTotal)
	env.verify(t)
}

func TestCheckout_RejectsOrderWithoutSeats(t *testing.T) {
	env := newStorefrontEnv(t)
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{})

	c, rec := env.newContext(http.MethodPost, "")
	require.NoError(t, env.h.Checkout(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env.verify(t)
}

func TestCheckout_ClearsCart(t *testing.T) {
	env := newStorefrontEnv(t)
	env.rdMock.ExpectHGetAll("cart:sess-1").SetVal(map[string]string{
		"showtime_id": "5",
		"seats":       `["A1"]`,
	})
	env.expectShowtimeLayout(5, 3, 6, 8)
	// Event assembly pulls the catalog context of the showtime.
	env.sqlMock.ExpectQuery("SELECT id, theater_id, name, screen_type, seat_rows, seats_per_row").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "theater_id", "name", "screen_type", "seat_rows", "seats_per_row"}).
			AddRow(3, 1, "Screen 1", "2D", 6, 8))
	env.sqlMock.ExpectQuery("SELECT id, name, city FROM theaters WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city"}).
			AddRow(1, "Grand Central", "Metropolis"))
	env.sqlMock.ExpectQuery("SELECT id, title, synopsis, duration_min, rating, poster_url").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "synopsis", "duration_min", "rating", "poster_url"}).
			AddRow(1, "The Heist", "", 120, "PG-13", ""))
	env.rdMock.ExpectDel("cart:sess-1").SetVal(1)

	c, rec := env.newContext(http.MethodPost, "")
	require.NoError(t, env.h.Checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp orderBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assertAmount(t, "500", resp.Order.Subtotal)
	assertAmount(t, "50", resp.Order.ServiceFee)
	assertAmount(t, "550", resp.Order.GrandTotal)
	env.verify(t)
}

func TestSetSnackQty_StoresLine(t *testing.T) {
	env := newStorefrontEnv(t)
	env.sqlMock.ExpectQuery("SELECT id, name, unit_price, image_url FROM snacks WHERE id IN").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit_price", "image_url"}).
			AddRow(7, "Nachos", "320.00", ""))
	env.rdMock.ExpectTxPipeline()
	env.rdMock.ExpectHSet("cart:sess-1", "snack:7", "3").SetVal(1)
	env.rdMock.ExpectExpire("cart:sess-1", cartTTL).SetVal(true)
	env.rdMock.ExpectTxPipelineExec()

	c, rec := env.newContext(http.MethodPut, `{"snack_id":7,"quantity":3}`)
	require.NoError(t, env.h.SetSnackQty(c))
	require.Equal(t, http.StatusOK, rec.Code)
	env.verify(t)
}

func TestSetSnackQty_UnknownSnack(t *testing.T) {
	env := newStorefrontEnv(t)
	env.sqlMock.ExpectQuery("SELECT id, name, unit_price, image_url FROM snacks WHERE id IN").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit_price", "image_url"}))

	c, rec := env.newContext(http.MethodPut, `{"snack_id":99,"quantity":1}`)
	require.NoError(t, env.h.SetSnackQty(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	env.verify(t)
}

func TestSetSnackQty_NegativeQuantityRejected(t *testing.T) {
	env := newStorefrontEnv(t)

	c, rec := env.newContext(http.MethodPut, `{"snack_id":7,"quantity":-1}`)
	require.NoError(t, env.h.SetSnackQty(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env.verify(t)
}
