package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"shuttle/config"
	"shuttle/infras/otel"
	courtModel "shuttle/internal/domains/court/model"
	courtRepo "shuttle/internal/domains/court/repository"
	"shuttle/internal/domains/reservation/model"
	"shuttle/internal/domains/reservation/model/dto"
	"shuttle/internal/domains/reservation/repository"
	"shuttle/internal/domains/reservation/slots"
	"shuttle/internal/events"
	"shuttle/shared"
	"shuttle/shared/cache"
	"shuttle/shared/constant"
	gDto "shuttle/shared/dto"
	"shuttle/shared/failure"
	"shuttle/shared/timezone"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheReservationStats  = "reservation:stats"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Availability(ctx context.Context, courtID, date string, start *int) (dto.AvailabilityResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	courtRepo courtRepo.Court
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(repo repository.Reservation, courtRepo courtRepo.Court, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher events.Publisher) Reservation {
	return &serviceImpl{
		repo:      repo,
		courtRepo: courtRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func activeRangesFilter(courtID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCourtID,
				Operator: gDto.FilterOperatorEq,
				Value:    courtID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldReservationDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{model.StoreStatusWaiting, model.StoreStatusConfirmed},
				Table:    model.TableName,
			},
		},
	}
}

// activeRanges loads every non-cancelled interval for one court and date.
// Both the start-hour and end-hour computations feed off this single fetch.
func (s *serviceImpl) activeRanges(ctx context.Context, courtID string, date time.Time) ([]slots.HourRange, error) {
	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, activeRangesFilter(courtID, date))
	if err != nil {
		return nil, fmt.Errorf("failed to get active reservations: %w", err)
	}

	ranges := make([]slots.HourRange, len(reservations))
	for i, reservation := range reservations {
		ranges[i] = slots.HourRange{Start: reservation.StartHour, End: reservation.EndHour}
	}

	return ranges, nil
}

func (s *serviceImpl) getCourt(ctx context.Context, courtID string) (courtModel.Court, error) {
	court, err := s.courtRepo.Get(ctx, shared.FilterByID(courtID, courtModel.FieldID, courtModel.TableName))
	if err != nil {
		return court, fmt.Errorf("failed to get court: %w", err)
	}

	if court.ID == constant.Empty {
		return court, failure.NotFound("court not found")
	}

	return court, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	court, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		log.Error().Err(err).Str("court_id", req.CourtID).Msg("failed to resolve court")

		return err
	}

	if court.Status == courtModel.StatusMaintenance {
		return failure.BadRequestFromString("court is under maintenance")
	}

	reservation, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString("invalid reservation date")
	}

	if reservation.Duration == 0 {
		return failure.BadRequestFromString("reservation must cover at least one hour")
	}

	existing, err := s.activeRanges(ctx, req.CourtID, reservation.ReservationDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to get existing reservations")

		return err
	}

	requested := slots.HourRange{Start: reservation.StartHour, End: reservation.EndHour}
	for _, reserved := range existing {
		if slots.Overlaps(reserved, requested) {
			return failure.Conflict("time slot already reserved")
		}
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		// The exclusion constraint is the authority; the pre-check above
		// only races with concurrent inserts.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return failure.Conflict("time slot already reserved")
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.PublishReservationEvent(c, events.ReservationEvent{
			Type:            events.TypeReservationCreated,
			ReservationID:   reservation.ID,
			CourtID:         reservation.CourtID,
			ReservationDate: reservation.ReservationDate.Format(constant.DateOnlyFormat),
			StartHour:       reservation.StartHour,
			EndHour:         reservation.EndHour,
			UserID:          user,
		})

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheReservationStats)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	if err = res.FromModels(models, total, req.Limit); err != nil {
		log.Error().Err(err).Msg("stored reservation status is invalid")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && reservation.CreatedBy != user {
		return res, failure.ResourceRestrictedError
	}

	if err = res.FromModel(reservation); err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("stored reservation status is invalid")

		return res, err
	}

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) error {
	return s.transition(ctx, id, "Confirm", model.StoreStatusConfirmed, events.TypeReservationConfirmed, false)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, "Reject", model.StoreStatusCancelled, events.TypeReservationRejected, false)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, "Cancel", model.StoreStatusCancelled, events.TypeReservationCancelled, true)
}

// transition moves a pending reservation to its next status. Owner-scoped
// transitions reject callers who do not own the row.
func (s *serviceImpl) transition(ctx context.Context, id, name, storeStatus, eventType string, ownerOnly bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+name)
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found")
	}

	if ownerOnly && reservation.CreatedBy != user {
		return failure.ResourceRestrictedError
	}

	status, err := model.ParseStoreStatus(reservation.Status)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("stored reservation status is invalid")

		return err
	}

	if status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("reservation is already %s", status))
	}

	update := dto.UpdateStatusRequest{Status: storeStatus}
	updatedFields := shared.TransformFields(update, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.PublishReservationEvent(c, events.ReservationEvent{
			Type:            eventType,
			ReservationID:   reservation.ID,
			CourtID:         reservation.CourtID,
			ReservationDate: reservation.ReservationDate.Format(constant.DateOnlyFormat),
			StartHour:       reservation.StartHour,
			EndHour:         reservation.EndHour,
			UserID:          user,
		})

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheReservationStats)
	}()

	return nil
}

func (s *serviceImpl) Availability(ctx context.Context, courtID, date string, start *int) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getCourt(ctx, courtID); err != nil {
		log.Error().Err(err).Str("court_id", courtID).Msg("failed to resolve court")

		return res, err
	}

	day, err := time.ParseInLocation(constant.DateOnlyFormat, date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD")
	}

	existing, err := s.activeRanges(ctx, courtID, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to get existing reservations")

		return res, err
	}

	res.CourtID = courtID
	res.Date = date
	res.StartHours = slots.AvailableStartHours(existing, day, timezone.Now())

	if start != nil {
		res.EndHours = slots.AvailableEndHours(existing, *start)
	}

	return res, nil
}

func (s *serviceImpl) statusCount(ctx context.Context, storeStatus string) (int, error) {
	count, err := s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    storeStatus,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s reservations: %w", storeStatus, err)
	}

	return count, nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheReservationStats)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation stats")

		return res, nil
	}

	if res.TotalReservations, err = s.repo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	if res.Pending, err = s.statusCount(ctx, model.StoreStatusWaiting); err != nil {
		return res, err
	}

	if res.Confirmed, err = s.statusCount(ctx, model.StoreStatusConfirmed); err != nil {
		return res, err
	}

	if res.Cancelled, err = s.statusCount(ctx, model.StoreStatusCancelled); err != nil {
		return res, err
	}

	if res.TotalCourts, err = s.courtRepo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count courts")

		return res, fmt.Errorf("failed to count courts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation stats to cache")
		}
	}()

	return res, nil
}
