package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusway/campus-events-api/internal/api/handler/v1/request"
	"github.com/campusway/campus-events-api/internal/api/handler/v1/response"
	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/service"
)

type FormService interface {
	DefineForm(ctx context.Context, eventID uint, questions []domain.Question, actorID uint) ([]domain.Question, error)
	GetForm(ctx context.Context, eventID uint) ([]domain.Question, error)
	Presets() []domain.PresetQuestion
}

type RegistrationService interface {
	Register(ctx context.Context, eventID, userID uint) (domain.Registration, bool, error)
	RegisterWithForm(ctx context.Context, eventID, userID uint, answers []domain.Answer) (domain.Registration, error)
	Unregister(ctx context.Context, eventID, userID uint) (bool, error)
	ReviewRegistration(ctx context.Context, registrationID uint, status domain.RegistrationStatus, actorID uint) (domain.Registration, error)
	ListRegistrations(ctx context.Context, eventID, actorID uint) ([]domain.RegistrationDetail, error)
	ExportRegistrations(ctx context.Context, eventID, actorID uint) ([]byte, error)
}

type RegistrationHandler struct {
	svc     RegistrationService
	formSvc FormService
	uSvc    UserService
}

func NewRegistrationHandler(svc RegistrationService, formSvc FormService, uSvc UserService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:     svc,
		formSvc: formSvc,
		uSvc:    uSvc,
	}
}

// HandleGetForm godoc
// @Summary      Get the registration form of an event
// @Tags         forms
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {array}   domain.Question
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/form [get]
func (h *RegistrationHandler) HandleGetForm(ctx *gin.Context) {
	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	questions, err := h.formSvc.GetForm(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetForm -> h.formSvc.GetForm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, questions)
}

// HandleGetFormPresets godoc
// @Summary      List preset form questions
// @Tags         forms
// @Produce      json
// @Success      200  {array}   domain.PresetQuestion
// @Router       /form-presets [get]
func (h *RegistrationHandler) HandleGetFormPresets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.formSvc.Presets())
}

// HandleDefineForm godoc
// @Summary      Define the registration form of an event
// @Description  Replaces the whole question set. Existing responses to removed questions are dropped.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                       true  "event ID"
// @Param        input    body      request.DefineFormRequest true  "form definition"
// @Success      200      {array}   domain.Question
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/form [put]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleDefineForm(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DefineFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	questions := make([]domain.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = domain.Question{
			QuestionKey:      q.QuestionKey,
			QuestionText:     q.QuestionText,
			QuestionType:     domain.QuestionType(q.QuestionType),
			QuestionCategory: q.QuestionCategory,
			Options:          q.Options,
			IsRequired:       q.IsRequired,
			IsCustom:         q.IsCustom,
		}
	}

	defined, err := h.formSvc.DefineForm(ctx.Request.Context(), eventID, questions, user.ID)
	if err != nil {
		var validationErrs validation.Errors
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		case errors.Is(err, service.ErrFormNotSupported):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrFormNotSupported))
		case errors.As(err, &validationErrs):
			response.RenderErr(ctx, response.ErrBadRequest(validationErrs))
		default:
			err = fmt.Errorf("v1.HandleDefineForm -> h.formSvc.DefineForm -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, defined)
}

// HandleRegister godoc
// @Summary      Register for an EXTERNAL event
// @Description  Registering twice returns the existing registration instead of failing.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      201  {object}  response.RegisterResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registration, already, err := h.svc.Register(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrEventNotPublished):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrWrongRegistrationMethod):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrWrongRegistrationMethod))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	status := http.StatusCreated
	message := "registered successfully"
	if already {
		status = http.StatusOK
		message = "already registered"
	}

	ctx.JSON(status, response.RegisterResponse{
		Message:      message,
		Registration: registration,
	})
}

// HandleRegisterWithForm godoc
// @Summary      Register for a FORM event with answers
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                              true  "event ID"
// @Param        input    body      request.RegisterWithFormRequest  true  "form answers"
// @Success      201  {object}  response.RegisterResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register-form [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleRegisterWithForm(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterWithFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	answers := make([]domain.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = domain.Answer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
			Values:     a.Values,
		}
	}

	registration, err := h.svc.RegisterWithForm(ctx.Request.Context(), eventID, user.ID, answers)
	if err != nil {
		var validationErrs validation.Errors
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrEventNotPublished):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrWrongRegistrationMethod):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrWrongRegistrationMethod))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.As(err, &validationErrs):
			response.RenderErr(ctx, response.ErrBadRequest(validationErrs))
		default:
			err = fmt.Errorf("v1.HandleRegisterWithForm -> h.svc.RegisterWithForm -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{
		Message:      "registered successfully",
		Registration: registration,
	})
}

// HandleUnregister godoc
// @Summary      Cancel a registration
// @Description  Succeeds whether or not the user was registered.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  response.UnregisterResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/register [delete]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleUnregister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deleted, err := h.svc.Unregister(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUnregister -> h.svc.Unregister -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnregisterResponse{
		Message: "registration cancelled",
		Deleted: deleted,
	})
}

// HandleListRegistrations godoc
// @Summary      List registrations of an event
// @Description  Host/admin view with registrant details and form responses.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {array}   domain.RegistrationDetail
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	details, err := h.svc.ListRegistrations(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		default:
			err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.ListRegistrations -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleReviewRegistration godoc
// @Summary      Approve or reject a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int                                true  "registration ID"
// @Param        input           body      request.ReviewRegistrationRequest  true  "review decision"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/review [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleReviewRegistration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrationID, err := strconv.ParseUint(ctx.Param("registrationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid registration ID: %w", err)))
		return
	}

	var req request.ReviewRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reviewed, err := h.svc.ReviewRegistration(ctx.Request.Context(), uint(registrationID), domain.RegistrationStatus(req.Status), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		case errors.Is(err, service.ErrRegistrationResolved):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationResolved))
		case errors.Is(err, service.ErrInvalidReviewStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidReviewStatus))
		default:
			err = fmt.Errorf("v1.HandleReviewRegistration -> h.svc.ReviewRegistration -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, reviewed)
}

// HandleExportRegistrations godoc
// @Summary      Export form registrations as CSV
// @Tags         registrations
// @Produce      text/csv
// @Param        eventID  path  int  true  "event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/registrations/export [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleExportRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	data, err := h.svc.ExportRegistrations(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventHost))
		default:
			err = fmt.Errorf("v1.HandleExportRegistrations -> h.svc.ExportRegistrations -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	filename := fmt.Sprintf("event_%d_registrations.csv", eventID)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
