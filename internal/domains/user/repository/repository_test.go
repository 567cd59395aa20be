package repository_test

import (
	"testing"

	"venuebook/internal/domains/user/repository"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFilter(t *testing.T) {
	t.Run("any user", func(t *testing.T) {
		filter := repository.UsernameFilter("vali", "")

		where, args := filter.GetWhereClause()

		assert.Equal(t, "(users.username = :username)", where)
		assert.Equal(t, map[string]any{"username": "vali"}, args)
	})

	t.Run("other than the caller", func(t *testing.T) {
		filter := repository.UsernameFilter("vali", "user-id")

		where, args := filter.GetWhereClause()

		assert.Equal(t, "(users.username = :username AND users.id != :exclude_id)", where)
		assert.Equal(t, "user-id", args["exclude_id"])
	})
}
