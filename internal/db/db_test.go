package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-console/config"
)

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector("sqlite::memory:").Name())
	assert.Equal(t, "postgres", Dialector("host=localhost user=console dbname=console").Name())
}

func TestInit_SQLiteMigrates(t *testing.T) {
	db, err := Init(&config.DatabaseConfig{DSN: "sqlite:file:dbinit?mode=memory&cache=shared", MaxOpenConns: 1})
	require.NoError(t, err)

	for _, table := range []string{"audit_entries", "push_subscriptions", "subscription_rooms"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
