package court

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"shuttle/infras/otel"
	"shuttle/internal/domains/court/model"
	"shuttle/internal/domains/court/model/dto"
	"shuttle/internal/domains/court/service"
	reservationService "shuttle/internal/domains/reservation/service"
	"shuttle/shared"
	"shuttle/shared/constant"
	gDto "shuttle/shared/dto"
	"shuttle/shared/failure"
	"shuttle/shared/validator"
	"shuttle/transport/http/response"
)

type Handler struct {
	service            service.Court
	reservationService reservationService.Reservation
	otel               otel.Otel
}

func New(service service.Court, reservationService reservationService.Reservation, otel otel.Otel) Handler {
	return Handler{
		service:            service,
		reservationService: reservationService,
		otel:               otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/courts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCourt)
		routerGroup.Get("/", handler.GetCourts)
		routerGroup.Get("/{id}", handler.GetCourtByID)
		routerGroup.Get("/{id}/availability", handler.GetCourtAvailability)
		routerGroup.Patch("/{id}", handler.UpdateCourt)
		routerGroup.Delete("/{id}", handler.DeleteCourt)
	})
}

// CreateCourt handles the creation of a new court.
// @Summary Create a new court
// @Description Create a new court with the provided details.
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param number formData integer true "Court number"
// @Param status formData string false "Court status (available, booked, maintenance)"
// @Param image formData file false "Court photo"
// @Success 201 {object} response.Message "Court created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [post]
// @Security BearerAuth
func (handler *Handler) CreateCourt(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCourt")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateCourtRequest{
		Status: request.FormValue(model.FieldStatus),
	}

	if numberStr := request.FormValue(model.FieldNumber); numberStr != "" {
		if n, err := shared.ConvertStringToInt(numberStr); err == nil {
			req.Number = n
		}
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create court")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Court created successfully")
}

// GetCourts retrieves all courts based on query parameters.
// @Summary Get all courts
// @Description Retrieve all courts with optional filtering and pagination.
// @Tags Court
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (available, booked, maintenance)"
// @Success 200 {object} response.Data[dto.GetCourtsResponse] "List of courts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts [get]
// @Security BearerAuth
func (handler *Handler) GetCourts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	courts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get courts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Courts retrieved successfully")

	response.WithJSON(w, http.StatusOK, courts)
}

// GetCourtByID retrieves a court by its ID.
// @Summary Get a court by ID
// @Description Retrieve a court by its unique identifier.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Data[dto.CourtResponse] "Court details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	court, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court retrieved successfully")

	response.WithJSON(w, http.StatusOK, court)
}

// GetCourtAvailability lists bookable hours for a court on a date.
// @Summary Get court availability
// @Description List available start hours for a court on a date, and available end hours when a start hour is given.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query integer false "Chosen start hour (6-21)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available hours"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id}/availability [get]
// @Security BearerAuth
func (handler *Handler) GetCourtAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourtAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	date := r.URL.Query().Get(constant.RequestParamDate)
	if date == "" {
		err := failure.BadRequestFromString("date query parameter is required")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var start *int

	if startStr := r.URL.Query().Get(constant.RequestParamStart); startStr != "" {
		s, err := shared.ConvertStringToInt(startStr)
		if err != nil {
			err := failure.BadRequestFromString("start must be an integer hour")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		start = &s
	}

	availability, err := handler.reservationService.Availability(ctx, id, date, start)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get court availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Court availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// UpdateCourt updates an existing court by its ID.
// @Summary Update a court by ID
// @Description Update the number, status, or photo of an existing court.
// @Tags Court
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Court ID"
// @Param number formData integer false "Court number"
// @Param status formData string false "Court status (available, booked, maintenance)"
// @Param image formData file false "Court photo"
// @Success 200 {object} response.Message "Court updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCourtRequest{}

	if numberStr := r.FormValue(model.FieldNumber); numberStr != "" {
		if n, err := shared.ConvertStringToInt(numberStr); err == nil {
			req.Number = &n
		}
	}

	if status := r.FormValue(model.FieldStatus); status != "" {
		req.Status = &status
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court updated successfully")
}

// DeleteCourt deletes a court by its ID.
// @Summary Delete a court by ID
// @Description Delete a court using its unique identifier. The stored photo is removed as well.
// @Tags Court
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} response.Message "Court deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/courts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCourt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete court")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Court deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Court deleted successfully")
}
