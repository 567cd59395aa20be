package dto_test

import (
	"net/http"
	"net/url"
	"venuebook/shared/constant"
	"venuebook/shared/dto"
	"venuebook/shared/model"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		model model.Metadata
		want  dto.Metadata
	}{
		{
			name: "edited row",
			model: model.Metadata{
				CreatedAt:  createdAt,
				ModifiedAt: modifiedAt,
				CreatedBy:  "creator",
				ModifiedBy: "modifier",
			},
			want: dto.Metadata{
				CreatedAt:  createdAt.Format(constant.DateFormat),
				CreatedBy:  "creator",
				ModifiedAt: modifiedAt.Format(constant.DateFormat),
				ModifiedBy: "modifier",
			},
		},
		{
			name:  "zero timestamps",
			model: model.Metadata{CreatedBy: "creator", ModifiedBy: "creator"},
			want:  dto.Metadata{CreatedBy: "creator", ModifiedBy: "creator"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dto.Metadata{}
			got.FromModel(tt.model)

			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		paginate bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			rawQuery: "page=2&limit=20&sort_by=name&sort_dir=ASC",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:     "lowercase direction",
			rawQuery: "sort_dir=desc",
			expected: dto.QueryParams{SortDir: "DESC"},
		},
		{
			name:     "unknown direction",
			rawQuery: "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
		{
			name:     "defaults when paginating",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults without pagination",
			expected: dto.QueryParams{},
		},
		{
			name:     "malformed page",
			rawQuery: "page=invalid",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "negative page",
			rawQuery: "page=-1",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "zero page",
			rawQuery: "page=0",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "negative limit",
			rawQuery: "limit=-10",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit above cap",
			rawQuery: "limit=5000",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:     "uncapped without pagination",
			rawQuery: "limit=5000",
			expected: dto.QueryParams{Limit: 5000},
		},
		{
			name:     "partial parameters",
			rawQuery: "page=3&sort_by=email",
			paginate: true,
			expected: dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "http://example.com/v1/venues?"+tt.rawQuery, nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			got := dto.QueryParams{}
			got.FromRequest(req, tt.paginate)

			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 3, Limit: 25}, want: 50},
		{params: dto.QueryParams{Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 2}, want: 0},
	}

	for _, tt := range tests {
		if got := tt.params.Offset(); got != tt.want {
			t.Errorf("Offset(%+v) = %d, want %d", tt.params, got, tt.want)
		}
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}

func TestQueryParams_FromRequestRejectsUnsafeSortBy(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   string
	}{
		{name: "plain column", sortBy: "price", want: "price"},
		{name: "qualified column", sortBy: "venues.capacity", want: "venues.capacity"},
		{name: "injection attempt", sortBy: "price; DROP TABLE venues", want: ""},
		{name: "uppercase", sortBy: "PRICE", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := url.URL{Path: "/v1/venues"}
			query := u.Query()
			query.Set("sort_by", tt.sortBy)
			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, false)

			if queryParams.SortBy != tt.want {
				t.Errorf("expected SortBy to be %q, got %q", tt.want, queryParams.SortBy)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "approved", Operator: dto.FilterOperatorEq, Table: "venues"},
			dto.Filter{ArgName: "min_capacity", Field: "capacity", Value: 10, Operator: dto.FilterOperatorGreaterEq, Table: "venues"},
			dto.Filter{ArgName: "max_capacity", Field: "capacity", Value: 100, Operator: dto.FilterOperatorLessEq, Table: "venues"},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(venues.status = :status AND venues.capacity >= :min_capacity AND venues.capacity <= :max_capacity)"
	if where != expected {
		t.Errorf("expected where clause %q, got %q", expected, where)
	}

	if len(args) != 3 || args["min_capacity"] != 10 || args["max_capacity"] != 100 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{Field: "venue_id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn, Table: "images"}

	where, args := filter.GetWhereClause()

	if where != "images.venue_id IN (:venue_id_0, :venue_id_1) " {
		t.Errorf("unexpected where clause %q", where)
	}

	if args["venue_id_0"] != "a" || args["venue_id_1"] != "b" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestAnd(t *testing.T) {
	capacity := dto.Filter{ArgName: "min_capacity", Field: "capacity", Value: 50, Operator: dto.FilterOperatorGreaterEq, Table: "venues"}
	status := dto.Filter{Field: "status", Value: "approved", Operator: dto.FilterOperatorEq, Table: "venues"}

	and := dto.And(capacity, nil, status)
	where, args := and.GetWhereClause()

	if where != "(venues.capacity >= :min_capacity AND venues.status = :status)" {
		t.Errorf("unexpected AND clause: %s", where)
	}

	if args["min_capacity"] != 50 || args["status"] != "approved" {
		t.Errorf("unexpected args: %v", args)
	}

	empty := dto.And()
	if where, _ = empty.GetWhereClause(); where != "" {
		t.Errorf("expected empty clause, got %s", where)
	}
}
