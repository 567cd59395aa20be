package helper_test

import (
	"testing"
	"venuebook/config"
	"venuebook/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "venue"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Name = "venuebook"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://venue:p%40ss%2Fword@db:5432/test_venuebook?sslmode=disable&x-migrations-table=schema_migrations",
		helper.DatabaseURL(cfg),
	)
}

func TestRunRejectsUnknownAction(t *testing.T) {
	err := helper.Run(&config.Config{}, helper.Action("sideways"))

	require.ErrorIs(t, err, helper.ErrUnknownAction)
}
