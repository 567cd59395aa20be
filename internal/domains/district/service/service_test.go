package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venuebook/config"
	"venuebook/infras/otel/mocks"
	districtMocks "venuebook/internal/domains/district/mocks"
	"venuebook/internal/domains/district/model"
	"venuebook/internal/domains/district/model/dto"
	"venuebook/internal/domains/district/service"
	venueDto "venuebook/internal/domains/venue/model/dto"
	venueMocks "venuebook/internal/domains/venue/service/mocks"
	"venuebook/permissions"
	cacheMocks "venuebook/shared/cache/mocks"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
)

var (
	admin = permissions.Principal{ID: "admin-id", Username: "admin", Role: constant.RoleAdmin}
	owner = permissions.Principal{ID: "owner-id", Username: "owner", Role: constant.RoleOwner}
)

type fixture struct {
	svc    service.District
	repo   *districtMocks.MockDistrict
	venues *venueMocks.MockVenue
	cache  *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   districtMocks.NewMockDistrict(ctrl),
		venues: venueMocks.NewMockVenue(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.venues, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asPrincipal(p permissions.Principal) context.Context {
	return permissions.NewContext(context.Background(), p)
}

func TestDistrictService_RoundTrip(t *testing.T) {
	f := newFixture(t)

	var stored model.District

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, district model.District) error {
			stored = district

			return nil
		})
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (model.District, error) {
			return stored, nil
		})
	f.venues.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter venueDto.Filter) (venueDto.GetVenuesResponse, error) {
			assert.Equal(t, stored.ID, filter.DistrictID)

			return venueDto.GetVenuesResponse{}, nil
		})

	created, err := f.svc.Create(asPrincipal(admin), dto.CreateDistrictRequest{Name: "Chilanzar"})
	require.NoError(t, err)

	res, err := f.svc.Get(context.Background(), created.ID)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)
	assert.Equal(t, "Chilanzar", res.Name)
	assert.NotNil(t, res.Venues)
	assert.Empty(t, res.Venues)
}

func TestDistrictService_Create(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "owner is forbidden",
			principal: owner,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "name already taken",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "store reports the duplicate",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("district already exists"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "repository error",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(asPrincipal(tt.principal), dto.CreateDistrictRequest{Name: "Chilanzar"})

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestDistrictService_Update(t *testing.T) {
	district := model.District{ID: "district-id", Name: "Chilanzar"}

	tests := []struct {
		name      string
		principal permissions.Principal
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "owner is forbidden",
			principal: owner,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "not found",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "name used by another district",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(district, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "rename excludes the district itself",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(district, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "districts.id != :exclude_id")
						assert.Equal(t, "district-id", args["exclude_id"])
						assert.Equal(t, "Yunusabad", args[model.FieldName])

						return false, nil
					})
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Yunusabad", fields[model.FieldName])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(asPrincipal(tt.principal), dto.UpdateDistrictRequest{Name: "Yunusabad"}, "district-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestDistrictService_Delete(t *testing.T) {
	t.Run("owner is forbidden", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(asPrincipal(owner), "district-id")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin deletes without touching venues", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{ID: "district-id"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(asPrincipal(admin), "district-id")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestDistrictService_GetVenues(t *testing.T) {
	t.Run("only approved venues", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{ID: "district-id"}, nil)
		f.venues.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), venueDto.Filter{DistrictID: "district-id", Status: constant.VenueStatusApproved}).
			Return(venueDto.GetVenuesResponse{Venues: []venueDto.VenueResponse{{ID: "venue-id"}}, TotalData: 1, TotalPage: 1}, nil)

		res, err := f.svc.GetVenues(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "district-id")

		assert.NoError(t, err)
		assert.Len(t, res.Venues, 1)
	})

	t.Run("missing district", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{}, nil)

		_, err := f.svc.GetVenues(context.Background(), gDto.QueryParams{}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestDistrictService_GetAll(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{})

		assert.NoError(t, err)
	})

	t.Run("sorted by name when no sort given", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.District, error) {
				assert.Equal(t, "districts.name", params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.District{{ID: "a", Name: "Chilanzar"}, {ID: "b", Name: "Yunusabad"}}, nil
			})

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Districts, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})
}
