package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"shuttle/infras/otel"
	"shuttle/internal/domains/reservation/model"
	"shuttle/internal/domains/reservation/model/dto"
	"shuttle/internal/domains/reservation/service"
	"shuttle/shared"
	"shuttle/shared/constant"
	gDto "shuttle/shared/dto"
	"shuttle/shared/failure"
	"shuttle/shared/timezone"
	"shuttle/shared/validator"
	"shuttle/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/stats", handler.GetReservationStats)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}/confirm", handler.ConfirmReservation)
		routerGroup.Patch("/{id}/reject", handler.RejectReservation)
		routerGroup.Patch("/{id}/cancel", handler.CancelReservation)
	})
}

// statusFilter maps a domain status query value to its stored form.
func statusFilter(status string) (gDto.Filter, bool) {
	storeStatus, err := model.ToStoreStatus(status)
	if err != nil {
		return gDto.Filter{}, false
	}

	return gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    storeStatus,
		Table:    model.TableName,
	}, true
}

// CreateReservation handles the creation of a new reservation.
// @Summary Create a new reservation
// @Description Create a new court reservation for the authenticated user. It starts in pending status.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Message "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Reservation created successfully")
}

// GetReservations retrieves all reservations based on query parameters.
// @Summary Get all reservations
// @Description Retrieve all reservations with optional filtering and pagination. Admin only.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court_id query string false "Filter by court ID"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param reservation_date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	courtID := r.URL.Query().Get(model.FieldCourtID)
	status := r.URL.Query().Get(model.FieldStatus)
	reservationDate := r.URL.Query().Get(model.FieldReservationDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if courtID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCourtID,
			Operator: gDto.FilterOperatorEq,
			Value:    courtID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filter, ok := statusFilter(status)
		if !ok {
			err := failure.BadRequestFromString("unknown status filter")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, filter)
	}

	if reservationDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationDate,
			Operator: gDto.FilterOperatorEq,
			Value:    reservationDate,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations retrieves reservations for the authenticated user.
// @Summary Get my reservations
// @Description Retrieve the authenticated user's reservations with optional filtering and pagination.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param reservation_date query string false "Filter by date (YYYY-MM-DD)"
// @Param upcoming query boolean false "Only reservations from today onward"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of the user's reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)
	reservationDate := r.URL.Query().Get(model.FieldReservationDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCreatedBy,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if status != "" {
		filter, ok := statusFilter(status)
		if !ok {
			err := failure.BadRequestFromString("unknown status filter")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, filter)
	}

	if reservationDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationDate,
			Operator: gDto.FilterOperatorEq,
			Value:    reservationDate,
			Table:    model.TableName,
		})
	}

	if upcoming := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamUpcoming)); upcoming != nil && *upcoming {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    timezone.Now().Format(constant.DateOnlyFormat),
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User reservations retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationStats returns aggregate reservation counts.
// @Summary Get reservation statistics
// @Description Retrieve total, pending, confirmed, and cancelled reservation counts plus the court count. Admin only.
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Reservation statistics"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/stats [get]
// @Security BearerAuth
func (handler *Handler) GetReservationStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation by its unique identifier. Owners see their own; admins see all.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// ConfirmReservation confirms a pending reservation.
// @Summary Confirm a reservation
// @Description Confirm a pending reservation. Admin only.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation confirmed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/confirm [patch]
// @Security BearerAuth
func (handler *Handler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Confirm(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation confirmed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation confirmed successfully")
}

// RejectReservation rejects a pending reservation.
// @Summary Reject a reservation
// @Description Reject a pending reservation, cancelling it. Admin only.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation rejected successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reject(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation rejected successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation rejected successfully")
}

// CancelReservation cancels the caller's own pending reservation.
// @Summary Cancel a reservation
// @Description Cancel a pending reservation owned by the authenticated user.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}
