package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shipmentHandler handles HTTP requests related to shipments and tracking.
type shipmentHandler struct {
	shipmentService portssvc.ShipmentSvcFacade
}

func newShipmentHandler(ss portssvc.ShipmentSvcFacade) *shipmentHandler {
	return &shipmentHandler{shipmentService: ss}
}

// RegisterShipmentRoutes registers shipment, tracking and quote routes.
// mutating runs in front of the routes that write.
func RegisterShipmentRoutes(rg *gin.RouterGroup, shipmentService portssvc.ShipmentSvcFacade, mutating ...gin.HandlerFunc) {
	registerValidators()
	h := newShipmentHandler(shipmentService)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("", withMiddleware(mutating, h.createShipment)...)
		shipments.GET("/:shipmentID", h.getShipment)
		shipments.POST("/:shipmentID/transitions", withMiddleware(mutating, h.transitionShipment)...)
	}
	rg.GET("/tracking/:trackingNumber", h.trackShipment)
	rg.POST("/quotes", h.quote)
}

// createShipment godoc
// @Summary Create a shipment
// @Description Prices the parcel, stores it PENDING and debits the charge from the customer's wallet, all or nothing
// @Tags shipments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Used when the body has no idempotencyKey"
// @Param   shipment body dto.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} dto.CreateShipmentResponse "Created and charged"
// @Success 200 {object} dto.CreateShipmentResponse "Replayed result"
// @Failure 400 {object} dto.ErrorResponse "Validation, InvalidWeight"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No wallet to charge"
// @Failure 409 {object} dto.ErrorResponse "Same key still in progress"
// @Failure 422 {object} dto.ErrorResponse "InsufficientFunds, Conflict"
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /shipments [post]
func (h *shipmentHandler) createShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateShipment", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}
	key, err := resolveIdempotencyKey(c, req.IdempotencyKey)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = key

	resp, err := h.shipmentService.CreateShipment(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "create shipment")
		return
	}
	if !resp.Replayed {
		c.Header("Location", "/api/v1/shipments/"+resp.ShipmentID)
	}
	writeIdempotent(c, resp.Replayed, resp)
}

// getShipment godoc
// @Summary Get a shipment
// @Description Returns the shipment with its full status history
// @Tags shipments
// @Produce  json
// @Param   shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.ShipmentDetailResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /shipments/{shipmentID} [get]
func (h *shipmentHandler) getShipment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	resp, err := h.shipmentService.GetShipment(c.Request.Context(), actor, c.Param("shipmentID"))
	if err != nil {
		respondWithError(c, err, "retrieve shipment")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// trackShipment godoc
// @Summary Track a shipment
// @Tags shipments
// @Produce  json
// @Param   trackingNumber path string true "Tracking number"
// @Success 200 {object} dto.ShipmentDetailResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tracking/{trackingNumber} [get]
func (h *shipmentHandler) trackShipment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	resp, err := h.shipmentService.GetShipmentByTrackingNumber(c.Request.Context(), actor, c.Param("trackingNumber"))
	if err != nil {
		respondWithError(c, err, "track shipment")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// transitionShipment godoc
// @Summary Move a shipment along its lifecycle
// @Description PENDING -> ASSIGNED -> IN_TRANSIT -> DELIVERED, or CANCELLED from PENDING/ASSIGNED (refunds the charge)
// @Tags shipments
// @Accept  json
// @Produce  json
// @Param   shipmentID path string true "Shipment ID"
// @Param   transition body dto.TransitionShipmentRequest true "Target status"
// @Success 200 {object} dto.TransitionShipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "InvalidTransition"
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /shipments/{shipmentID}/transitions [post]
func (h *shipmentHandler) transitionShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.TransitionShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionShipment", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}

	resp, err := h.shipmentService.TransitionShipment(c.Request.Context(), actor, c.Param("shipmentID"), req)
	if err != nil {
		respondWithError(c, err, "transition shipment")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// quote godoc
// @Summary Quote a parcel
// @Description Prices a parcel without creating anything. Give a tier or both addresses.
// @Tags quotes
// @Accept  json
// @Produce  json
// @Param   quote body dto.QuoteRequest true "Parcel"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quotes [post]
func (h *shipmentHandler) quote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Quote", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}
	resp, err := h.shipmentService.Quote(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "quote shipment")
		return
	}
	c.JSON(http.StatusOK, resp)
}
