package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type windowQuery struct {
	Symbol   string `query:"symbol" validate:"required"`
	Lookback int    `query:"lookback" default:"90" validate:"gte=0,lte=3650"`
}

func bindQuery(t *testing.T, rawQuery string) (*windowQuery, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	q := &windowQuery{}
	return q, ReadAndValidateRequest(c, q)
}

func TestReadAndValidateRequest_Defaults(t *testing.T) {
	q, verr := bindQuery(t, "symbol=AAPL")
	require.Nil(t, verr)
	assert.Equal(t, 90, q.Lookback)
}

func TestReadAndValidateRequest_ExplicitZeroKept(t *testing.T) {
	q, verr := bindQuery(t, "symbol=AAPL&lookback=0")
	require.Nil(t, verr)
	assert.Equal(t, 0, q.Lookback)
}

func TestReadAndValidateRequest_Errors(t *testing.T) {
	_, verr := bindQuery(t, "lookback=-1")
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 2)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "ERR_REQUIRED", byField["symbol"].Code)
	assert.Equal(t, "ERR_GTE", byField["lookback"].Code)
	assert.Equal(t, "0", byField["lookback"].Params["min"])
	assert.Equal(t, "symbol is required", byField["symbol"].Message)
	assert.Equal(t, "lookback must be greater than or equal to 0", byField["lookback"].Message)
}

func TestReadAndValidateRequest_BindError(t *testing.T) {
	_, verr := bindQuery(t, "symbol=AAPL&lookback=abc")
	errs, ok := verr.([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_MALFORMED", errs[0].Code)
}
