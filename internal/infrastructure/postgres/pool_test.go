package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-count-api/pkg/config"
)

func TestBuildPoolConfig(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:5433/inv?sslmode=disable", MaxConns: 8, MinConns: 3}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 3, pc.MinConns)
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_Defaults(t *testing.T) {
	cfg := config.DBConfig{Host: "127.0.0.1", Port: 5432, User: "u", DBName: "inv", SSLMode: "disable", MinConns: 99}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, defaultMinConns, pc.MinConns, "min mayor que max se ignora")
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4("10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4("::1")
	assert.ErrorIs(t, err, errNoIPv4)
}
