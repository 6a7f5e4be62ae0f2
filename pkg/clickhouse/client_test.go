package clickhouse

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(ClientConfig{
		Host:        "ch.local",
		Port:        9000,
		Database:    "market",
		User:        "reader",
		Password:    "p@ss",
		DialTimeout: 5 * time.Second,
		ReadTimeout: 10 * time.Second,
		MaxExecTime: 30 * time.Second,
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/market", u.Path)
	assert.Equal(t, "reader", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "5s", u.Query().Get("dial_timeout"))
	assert.Equal(t, "10s", u.Query().Get("read_timeout"))
	assert.Equal(t, "30", u.Query().Get("max_execution_time"))
}

func TestBuildDSN_HTTP(t *testing.T) {
	dsn := buildDSN(ClientConfig{Host: "h", Port: 8123, Database: "d", UseHTTP: true})
	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Nil(t, u.User)
	assert.Empty(t, u.RawQuery)
}

func TestNewClient_RequiresHost(t *testing.T) {
	_, err := NewClient(context.Background())
	require.Error(t, err)
}
