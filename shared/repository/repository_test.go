package repository

import (
	"testing"
	"venuebook/infras/otel/mocks"
	"venuebook/shared/model"

	"github.com/stretchr/testify/assert"
)

type account struct {
	ID        string  `db:"id"`
	Username  string  `db:"username"`
	Password  string  `db:"password" sort:"-"`
	VenueName *string `column:"name"     db:"venue_name"   table:"venues"`
	model.Metadata
}

func TestRepository_OrderBy(t *testing.T) {
	repo := NewRepository[account]("account", "accounts", "id", nil, mocks.NewOtel())

	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    string
	}{
		{name: "default", want: "ORDER BY accounts.created_at DESC"},
		{name: "own column", sortBy: "username", sortDir: "ASC", want: "ORDER BY accounts.username ASC"},
		{name: "qualified own column", sortBy: "accounts.username", sortDir: "desc", want: "ORDER BY accounts.username DESC"},
		{name: "join alias", sortBy: "venue_name", want: "ORDER BY venues.name DESC"},
		{name: "qualified joined column", sortBy: "venues.name", sortDir: "ASC", want: "ORDER BY venues.name ASC"},
		{name: "embedded metadata", sortBy: "modified_at", want: "ORDER BY accounts.modified_at DESC"},
		{name: "hidden column", sortBy: "password", want: "ORDER BY accounts.created_at DESC"},
		{name: "hidden qualified column", sortBy: "accounts.password", want: "ORDER BY accounts.created_at DESC"},
		{name: "column of an unselected join", sortBy: "users.password", want: "ORDER BY accounts.created_at DESC"},
		{name: "unknown column", sortBy: "balance", want: "ORDER BY accounts.created_at DESC"},
		{name: "bad direction", sortBy: "username", sortDir: "sideways", want: "ORDER BY accounts.username DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.sortBy, tt.sortDir))
		})
	}
}
