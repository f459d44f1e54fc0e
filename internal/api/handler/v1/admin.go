package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusway/campus-events-api/internal/api/handler/v1/request"
	"github.com/campusway/campus-events-api/internal/api/handler/v1/response"
	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/service"
)

type AdminEventService interface {
	ListAllEvents(ctx context.Context, actorID uint, status domain.EventStatus) ([]domain.Event, error)
	ApproveEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error)
	RejectEvent(ctx context.Context, eventID, actorID uint, reason *string) (domain.Event, error)
	PublishEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error)
	UnpublishEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error)
	ArchiveEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error)
	SetEventFeatured(ctx context.Context, eventID, actorID uint, featured bool) (domain.Event, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, userID uint, organizationName, motivation string) (domain.HostApplication, error)
	ListApplications(ctx context.Context, status domain.ApplicationStatus, actorID uint) ([]domain.HostApplication, error)
	ReviewApplication(ctx context.Context, applicationID uint, status domain.ApplicationStatus, actorID uint) (domain.HostApplication, error)
}

type AdminHandler struct {
	eventSvc AdminEventService
	appSvc   ApplicationService
	uSvc     UserService
}

func NewAdminHandler(eventSvc AdminEventService, appSvc ApplicationService, uSvc UserService) *AdminHandler {
	return &AdminHandler{
		eventSvc: eventSvc,
		appSvc:   appSvc,
		uSvc:     uSvc,
	}
}

// renderTransitionErr maps the shared lifecycle error set; fallthrough
// errors are rendered as internal.
func renderTransitionErr(ctx *gin.Context, op string, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrUltimateAdminOnly):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrUltimateAdminOnly))
	case errors.Is(err, service.ErrInvalidTransition):
		response.RenderErr(ctx, response.ErrConflict(service.ErrInvalidTransition))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleListAllEvents godoc
// @Summary      List events of every status
// @Description  Ultimate admin only. Optionally filtered by status.
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "status filter"
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListAllEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.EventStatus(ctx.Query("status"))

	events, err := h.eventSvc.ListAllEvents(ctx.Request.Context(), user.ID, status)
	if err != nil {
		if errors.Is(err, service.ErrUltimateAdminOnly) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrUltimateAdminOnly))
			return
		}

		err = fmt.Errorf("v1.HandleListAllEvents -> h.eventSvc.ListAllEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleApproveEvent godoc
// @Summary      Approve a pending event
// @Tags         admin
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/approve [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleApproveEvent(ctx *gin.Context) {
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

	event, err := h.eventSvc.ApproveEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandleApproveEvent -> h.eventSvc.ApproveEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleRejectEvent godoc
// @Summary      Reject a pending event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                        true   "event ID"
// @Param        input    body      request.RejectEventRequest false  "rejection reason"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/reject [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleRejectEvent(ctx *gin.Context) {
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

	var req request.RejectEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	event, err := h.eventSvc.RejectEvent(ctx.Request.Context(), eventID, user.ID, reason)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandleRejectEvent -> h.eventSvc.RejectEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandlePublishEvent godoc
// @Summary      Publish a draft or rejected event
// @Tags         admin
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/publish [post]
// @Security     BearerAuth
func (h *AdminHandler) HandlePublishEvent(ctx *gin.Context) {
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

	event, err := h.eventSvc.PublishEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandlePublishEvent -> h.eventSvc.PublishEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleUnpublishEvent godoc
// @Summary      Unpublish an event back to draft
// @Tags         admin
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/unpublish [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleUnpublishEvent(ctx *gin.Context) {
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

	event, err := h.eventSvc.UnpublishEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandleUnpublishEvent -> h.eventSvc.UnpublishEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleArchiveEvent godoc
// @Summary      Archive an event
// @Tags         admin
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/archive [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleArchiveEvent(ctx *gin.Context) {
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

	event, err := h.eventSvc.ArchiveEvent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandleArchiveEvent -> h.eventSvc.ArchiveEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleFeatureEvent godoc
// @Summary      Feature or unfeature a published event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event ID"
// @Param        input    body      request.FeatureEventRequest true  "featured flag"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/feature [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleFeatureEvent(ctx *gin.Context) {
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

	var req request.FeatureEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.eventSvc.SetEventFeatured(ctx.Request.Context(), eventID, user.ID, *req.Featured)
	if err != nil {
		renderTransitionErr(ctx, "v1.HandleFeatureEvent -> h.eventSvc.SetEventFeatured", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleApplyForHost godoc
// @Summary      Apply to become an event host
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        input  body      request.ApplyHostRequest  true  "application details"
// @Success      201  {object}  domain.HostApplication
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /applications [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleApplyForHost(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ApplyHostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	application, err := h.appSvc.Apply(ctx.Request.Context(), user.ID, req.OrganizationName, req.Motivation)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyHost):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyHost))
		case errors.Is(err, service.ErrApplicationPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrApplicationPending))
		default:
			err = fmt.Errorf("v1.HandleApplyForHost -> h.appSvc.Apply -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

// HandleListApplications godoc
// @Summary      List host applications
// @Description  Ultimate admin only. Optionally filtered by status.
// @Tags         admin,applications
// @Produce      json
// @Param        status  query     string  false  "status filter"
// @Success      200  {array}   domain.HostApplication
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/applications [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListApplications(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.ApplicationStatus(ctx.Query("status"))

	applications, err := h.appSvc.ListApplications(ctx.Request.Context(), status, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrUltimateAdminOnly) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrUltimateAdminOnly))
			return
		}

		err = fmt.Errorf("v1.HandleListApplications -> h.appSvc.ListApplications -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// HandleReviewApplication godoc
// @Summary      Approve or reject a host application
// @Description  Approval promotes the applicant to event admin.
// @Tags         admin,applications
// @Accept       json
// @Produce      json
// @Param        applicationID  path      int                               true  "application ID"
// @Param        input          body      request.ReviewApplicationRequest  true  "review decision"
// @Success      200  {object}  domain.HostApplication
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/applications/{applicationID}/review [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleReviewApplication(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	applicationID, err := strconv.ParseUint(ctx.Param("applicationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid application ID: %w", err)))
		return
	}

	var req request.ReviewApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reviewed, err := h.appSvc.ReviewApplication(ctx.Request.Context(), uint(applicationID), domain.ApplicationStatus(req.Status), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("application", "ID", applicationID))
		case errors.Is(err, service.ErrUltimateAdminOnly):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrUltimateAdminOnly))
		case errors.Is(err, service.ErrApplicationResolved):
			response.RenderErr(ctx, response.ErrConflict(service.ErrApplicationResolved))
		case errors.Is(err, service.ErrInvalidApplicationStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidApplicationStatus))
		default:
			err = fmt.Errorf("v1.HandleReviewApplication -> h.appSvc.ReviewApplication -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, reviewed)
}
