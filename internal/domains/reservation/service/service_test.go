package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"shuttle/config"
	"shuttle/infras/otel/mocks"
	courtMocks "shuttle/internal/domains/court/mocks"
	courtModel "shuttle/internal/domains/court/model"
	reservationMocks "shuttle/internal/domains/reservation/mocks"
	"shuttle/internal/domains/reservation/model"
	"shuttle/internal/domains/reservation/model/dto"
	"shuttle/internal/domains/reservation/service"
	eventMocks "shuttle/internal/events/mocks"
	cacheMocks "shuttle/shared/cache/mocks"
	"shuttle/shared/constant"
	"shuttle/shared/failure"
	gModel "shuttle/shared/model"
	"shuttle/shared/timezone"
)

func availableCourt() courtModel.Court {
	return courtModel.Court{
		ID:     "court-id-123",
		Number: 1,
		Status: courtModel.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "admin-id",
			ModifiedBy: "admin-id",
		},
	}
}

func pendingReservation(owner string) model.Reservation {
	return model.Reservation{
		ID:              "reservation-id-123",
		CourtID:         "court-id-123",
		ReservationDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		StartHour:       10,
		EndHour:         12,
		Duration:        2,
		Status:          model.StoreStatusWaiting,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	validReq := dto.CreateReservationRequest{
		CourtID:         "court-id-123",
		ReservationDate: "2030-01-02",
		StartHour:       9,
		EndHour:         11,
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					PublishReservationEvent(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "court not found",
			req:  validReq,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courtModel.Court{}, nil)
			},
			wantErr: true,
		},
		{
			name: "court under maintenance",
			req:  validReq,
			setupMock: func() {
				court := availableCourt()
				court.Status = courtModel.StatusMaintenance

				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(court, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid reservation date",
			req: dto.CreateReservationRequest{
				CourtID:         "court-id-123",
				ReservationDate: "02-01-2030",
				StartHour:       9,
				EndHour:         11,
			},
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)
			},
			wantErr: true,
		},
		{
			name: "overlapping reservation",
			req:  validReq,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{pendingReservation("someone-else")}, nil)
			},
			wantErr: true,
		},
		{
			name: "exclusion constraint violation on insert",
			req:  validReq,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)})
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	tests := []struct {
		name       string
		userID     string
		role       string
		setupMock  func()
		wantErr    bool
		wantStatus string
	}{
		{
			name:   "owner can read own reservation",
			userID: "user-id-123",
			role:   constant.RoleUser,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:    false,
			wantStatus: model.StatusPending,
		},
		{
			name:   "admin can read any reservation",
			userID: "admin-id-456",
			role:   constant.RoleAdmin,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:    false,
			wantStatus: model.StatusPending,
		},
		{
			name:   "non-owner is rejected",
			userID: "other-user",
			role:   constant.RoleUser,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr: true,
		},
		{
			name:   "reservation not found",
			userID: "user-id-123",
			role:   constant.RoleUser,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name:   "invalid stored status",
			userID: "user-id-123",
			role:   constant.RoleUser,
			setupMock: func() {
				reservation := pendingReservation("user-id-123")
				reservation.Status = "garbage"

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			res, err := svc.Get(ctx, "reservation-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
			}
		})
	}
}

func TestReservationService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "confirm pending reservation",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					PublishReservationEvent(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "already confirmed",
			setupMock: func() {
				reservation := pendingReservation("user-id-123")
				reservation.Status = model.StoreStatusConfirmed

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "already cancelled",
			setupMock: func() {
				reservation := pendingReservation("user-id-123")
				reservation.Status = model.StoreStatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "reservation not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id-456")
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

			err := svc.Confirm(ctx, "reservation-id-123")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "owner cancels own reservation",
			userID: "user-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					PublishReservationEvent(gomock.Any(), gomock.Any()).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "non-owner cannot cancel",
			userID: "other-user",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

			err := svc.Cancel(ctx, "reservation-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReservationService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	startHour := 8

	tests := []struct {
		name           string
		date           string
		start          *int
		setupMock      func()
		wantErr        bool
		wantStartHours []int
		wantEndHours   []int
	}{
		{
			name: "empty day lists every start hour",
			date: "2030-01-02",
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)
			},
			wantErr:        false,
			wantStartHours: []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
		},
		{
			name:  "existing reservation blocks its hours",
			date:  "2030-01-02",
			start: &startHour,
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{pendingReservation("user-id-123")}, nil)
			},
			wantErr:        false,
			wantStartHours: []int{6, 7, 8, 9, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
			wantEndHours:   []int{9, 10},
		},
		{
			name: "invalid date format",
			date: "02/01/2030",
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableCourt(), nil)
			},
			wantErr: true,
		},
		{
			name: "court not found",
			date: "2030-01-02",
			setupMock: func() {
				mockCourtRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(courtModel.Court{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Availability(context.Background(), "court-id-123", tt.date, tt.start)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "court-id-123", res.CourtID)
			assert.Equal(t, tt.date, res.Date)
			assert.Equal(t, tt.wantStartHours, res.StartHours)

			if tt.start != nil {
				assert.Equal(t, tt.wantEndHours, res.EndHours)
			}
		})
	}
}

func TestReservationService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockCourtRepo := courtMocks.NewMockCourt(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCourtRepo, cfg, mockCache, mockOtel, mockPublisher)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:   false,
			wantTotal: 0,
		},
		{
			name: "cache miss aggregates counts",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(10, nil)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(4, nil)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(5, nil)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockCourtRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 10,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Stats(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, res.TotalReservations)
			}
		})
	}
}
