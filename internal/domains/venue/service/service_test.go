package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venuebook/config"
	"venuebook/infras/otel/mocks"
	s3Mocks "venuebook/infras/s3/mocks"
	bookingMocks "venuebook/internal/domains/booking/mocks"
	bookingModel "venuebook/internal/domains/booking/model"
	imageMocks "venuebook/internal/domains/image/mocks"
	imageModel "venuebook/internal/domains/image/model"
	venueMocks "venuebook/internal/domains/venue/mocks"
	"venuebook/internal/domains/venue/model"
	"venuebook/internal/domains/venue/model/dto"
	"venuebook/internal/domains/venue/service"
	"venuebook/permissions"
	cacheMocks "venuebook/shared/cache/mocks"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
)

var (
	admin  = permissions.Principal{ID: "admin-id", Username: "admin", Role: constant.RoleAdmin}
	ownerA = permissions.Principal{ID: "owner-a", Username: "owner_a", Role: constant.RoleOwner}
	ownerB = permissions.Principal{ID: "owner-b", Username: "owner_b", Role: constant.RoleOwner}
)

type fixture struct {
	svc         service.Venue
	repo        *venueMocks.MockVenue
	imageRepo   *imageMocks.MockImage
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	s3          *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        venueMocks.NewMockVenue(ctrl),
		imageRepo:   imageMocks.NewMockImage(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "venuebook"

	f.svc = service.New(f.repo, f.imageRepo, f.bookingRepo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asPrincipal(p permissions.Principal) context.Context {
	return permissions.NewContext(context.Background(), p)
}

func strPtr(value string) *string {
	return &value
}

func venueOfA() model.Venue {
	return model.Venue{
		ID:            "venue-id",
		Name:          "Grand Hall",
		DistrictID:    "district-id",
		DistrictName:  strPtr("Chilanzar"),
		Address:       "Bunyodkor 1",
		Capacity:      100,
		Price:         25,
		Status:        constant.VenueStatusPending,
		OwnerID:       ownerA.ID,
		OwnerUsername: strPtr(ownerA.Username),
	}
}

func uploadedFile(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(constant.FormFiles, name)
	require.NoError(t, err)

	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File[constant.FormFiles][0]
}

func TestVenueService_GetAll(t *testing.T) {
	minCapacity := 50

	tests := []struct {
		name      string
		filter    dto.Filter
		setupMock func(f fixture)
		wantErr   bool
		wantCount int
	}{
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "filters by district, status and capacity with images attached",
			filter: dto.Filter{DistrictID: "district-id", Status: constant.VenueStatusApproved, MinCapacity: &minCapacity},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Venue, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "venues.district_id = :district_id")
						assert.Contains(t, where, "venues.capacity >= :min_capacity")
						assert.Equal(t, constant.VenueStatusApproved, args[model.FieldStatus])

						return []model.Venue{venueOfA()}, nil
					})
				f.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]imageModel.Image{{ID: "image-id", VenueID: "venue-id", ImageURL: "https://cdn.example.com/a.png"}}, nil)
			},
			wantCount: 1,
		},
		{
			name: "empty result skips the image lookup",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, tt.filter)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Venues, tt.wantCount)

			if tt.wantCount > 0 {
				assert.Equal(t, "Chilanzar", res.Venues[0].DistrictName)
				assert.Equal(t, ownerA.Username, res.Venues[0].Owner.Username)
				assert.Len(t, res.Venues[0].Images, 1)
			}
		})
	}
}

func TestVenueService_GetByOwner(t *testing.T) {
	t.Run("requires a principal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetByOwner(context.Background(), gDto.QueryParams{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("lists the caller's venues", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Venue, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, ownerA.ID, args[model.FieldOwnerID])

				return []model.Venue{venueOfA()}, nil
			})
		f.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetByOwner(asPrincipal(ownerA), gDto.QueryParams{})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
	})
}

func TestVenueService_Get(t *testing.T) {
	t.Run("attaches images and upcoming bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
		f.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, constant.BookingStatusUpcoming, args[bookingModel.FieldStatus])

				return []bookingModel.Booking{{
					ID:              "booking-id",
					VenueID:         "venue-id",
					ReservationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					GuestCount:      50,
					Status:          constant.BookingStatusUpcoming,
				}}, nil
			})

		res, err := f.svc.Get(context.Background(), "venue-id")

		assert.NoError(t, err)
		assert.Empty(t, res.Images)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, "2025-06-01", res.Bookings[0].ReservationDate)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVenueService_Create(t *testing.T) {
	req := dto.CreateVenueRequest{
		Name:        "Grand Hall",
		DistrictID:  "district-id",
		Address:     "Bunyodkor 1",
		Capacity:    100,
		Price:       25,
		PhoneNumber: "+998901234567",
		Status:      constant.VenueStatusApproved,
	}

	tests := []struct {
		name       string
		principal  permissions.Principal
		files      []string
		setupMock  func(f fixture)
		wantStatus string
		wantImages int
	}{
		{
			name:      "owner cannot choose the status",
			principal: ownerA,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, venue model.Venue) error {
						assert.Equal(t, ownerA.ID, venue.OwnerID)

						return nil
					})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantStatus: constant.VenueStatusPending,
		},
		{
			name:      "admin may set the status",
			principal: admin,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, errors.New("replica lag"))
			},
			wantStatus: constant.VenueStatusApproved,
		},
		{
			name:      "uploaded files become images",
			principal: ownerA,
			files:     []string{"front.png", "hall.jpg"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), "venuebook", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/venues/venue-id/a.png", nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), "venuebook", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("upload failed"))
				f.imageRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(1)).Return(nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantStatus: constant.VenueStatusPending,
			wantImages: 1,
		},
		{
			name:      "image rows failing do not fail the venue",
			principal: ownerA,
			files:     []string{"front.png"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/venues/venue-id/a.png", nil)
				f.imageRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantStatus: constant.VenueStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			request := req
			for _, name := range tt.files {
				request.Files = append(request.Files, uploadedFile(t, name))
			}

			res, err := f.svc.Create(asPrincipal(tt.principal), request)

			time.Sleep(10 * time.Millisecond)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.principal.ID, res.Owner.ID)
			assert.Len(t, res.Images, tt.wantImages)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(asPrincipal(ownerA), req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestVenueService_Update(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		req       dto.UpdateVenueRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty patch",
			principal: ownerA,
			req:       dto.UpdateVenueRequest{},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "another owner is forbidden",
			principal: ownerB,
			req:       dto.UpdateVenueRequest{Address: strPtr("Chilonzor 9")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "admin updates the address",
			principal: admin,
			req:       dto.UpdateVenueRequest{Address: strPtr("Chilonzor 9")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						address, ok := fields[model.FieldAddress].(*string)
						assert.True(t, ok)
						assert.Equal(t, "Chilonzor 9", *address)

						return nil
					})
			},
		},
		{
			name:      "owner status change is dropped",
			principal: ownerA,
			req:       dto.UpdateVenueRequest{Name: strPtr("Small Hall"), Status: strPtr(constant.VenueStatusApproved)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldStatus)
						assert.Contains(t, fields, model.FieldName)

						return nil
					})
			},
		},
		{
			name:      "not found",
			principal: admin,
			req:       dto.UpdateVenueRequest{Name: strPtr("Small Hall")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(asPrincipal(tt.principal), tt.req, "venue-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestVenueService_Approve(t *testing.T) {
	t.Run("owner cannot approve own venue", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Approve(asPrincipal(ownerA), "venue-id")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing venue", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Approve(asPrincipal(admin), "venue-id")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("admin approves", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				status, ok := fields[model.FieldStatus].(*string)
				assert.True(t, ok)
				assert.Equal(t, constant.VenueStatusApproved, *status)

				return nil
			})

		err := f.svc.Approve(asPrincipal(admin), "venue-id")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestVenueService_Delete(t *testing.T) {
	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)

		err := f.svc.Delete(asPrincipal(ownerB), "venue-id")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("owner deletes venue and its images", func(t *testing.T) {
		f := newFixture(t)

		url := "https://cdn.example.com/venues/venue-id/a.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
		f.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]imageModel.Image{{ID: "image-id", VenueID: "venue-id", ImageURL: url}}, nil)
		f.imageRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) error {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "venue-id", args[imageModel.FieldVenueID])

				return nil
			})
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("venuebook", url).Return("venues/venue-id/a.png").AnyTimes()
		f.s3.EXPECT().DeleteFile(gomock.Any(), "venuebook", "", "venues/venue-id/a.png").Return(nil).AnyTimes()

		err := f.svc.Delete(asPrincipal(ownerA), "venue-id")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("venue without images", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueOfA(), nil)
		f.imageRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(asPrincipal(admin), "venue-id")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
