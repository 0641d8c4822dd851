package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ReplayedHeader is set on responses served from a stored idempotent result.
const ReplayedHeader = "Idempotent-Replayed"

// walletHandler handles HTTP requests related to wallets and their ledger.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// RegisterWalletRoutes registers the wallet routes. mutating runs in front of
// the money-moving routes only.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, mutating ...gin.HandlerFunc) {
	registerValidators()
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.openWallet)
		wallets.GET("/:accountID", h.getWallet)
		wallets.GET("/:accountID/balance", h.getBalance)
		wallets.GET("/:accountID/entries", h.listEntries)
		wallets.POST("/:accountID/funds", withMiddleware(mutating, h.addFunds)...)
		wallets.POST("/:accountID/adjustments", withMiddleware(mutating, h.adjust)...)
	}
}

// openWallet godoc
// @Summary Open a wallet
// @Description Opens the caller's wallet in a currency, or returns the existing one
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   wallet body dto.OpenWalletRequest false "Currency (defaults to the service currency)"
// @Success 201 {object} dto.WalletResponse "Wallet created"
// @Success 200 {object} dto.WalletResponse "Wallet already existed"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) openWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.OpenWalletRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for OpenWallet", slog.String("error", err.Error()))
			respondBadRequest(c, bindErrorMessage(err))
			return
		}
	}

	account, created, err := h.walletService.OpenAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "open wallet")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	_, balance, err := h.walletService.GetBalance(c.Request.Context(), actor, account.AccountID)
	if err != nil {
		respondWithError(c, err, "open wallet")
		return
	}
	c.JSON(status, dto.ToWalletResponse(account, balance))
}

// getWallet godoc
// @Summary Get a wallet
// @Description Returns the wallet with its derived balance
// @Tags wallets
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{accountID} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	account, balance, err := h.walletService.GetAccount(c.Request.Context(), actor, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(account, balance))
}

// getBalance godoc
// @Summary Get a wallet balance
// @Tags wallets
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{accountID}/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	account, balance, err := h.walletService.GetBalance(c.Request.Context(), actor, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(account, balance))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists a wallet's ledger entries, newest first, with token pagination
// @Tags wallets
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{accountID}/entries [get]
func (h *walletHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}

	resp, err := h.walletService.ListEntries(c.Request.Context(), actor, c.Param("accountID"), params)
	if err != nil {
		respondWithError(c, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// addFunds godoc
// @Summary Add funds
// @Description Credits a TOPUP to the wallet exactly once per idempotency key
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   Idempotency-Key header string false "Used when the body has no idempotencyKey"
// @Param   funds body dto.AddFundsRequest true "Amount"
// @Success 201 {object} dto.AddFundsResponse "Credited"
// @Success 200 {object} dto.AddFundsResponse "Replayed result"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Same key still in progress"
// @Failure 422 {object} dto.ErrorResponse "Key reused with a different payload"
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{accountID}/funds [post]
func (h *walletHandler) addFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddFunds", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}
	key, err := resolveIdempotencyKey(c, req.IdempotencyKey)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = key

	resp, err := h.walletService.AddFunds(c.Request.Context(), actor, c.Param("accountID"), req)
	if err != nil {
		respondWithError(c, err, "add funds")
		return
	}
	writeIdempotent(c, resp.Replayed, resp)
}

// adjust godoc
// @Summary Post an adjustment
// @Description Admin-only signed correction; negative amounts cannot overdraw the wallet
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   Idempotency-Key header string false "Used when the body has no idempotencyKey"
// @Param   adjustment body dto.AdjustmentRequest true "Signed amount and note"
// @Success 201 {object} dto.AdjustmentResponse
// @Success 200 {object} dto.AdjustmentResponse "Replayed result"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{accountID}/adjustments [post]
func (h *walletHandler) adjust(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Adjust", slog.String("error", err.Error()))
		respondBadRequest(c, bindErrorMessage(err))
		return
	}
	key, err := resolveIdempotencyKey(c, req.IdempotencyKey)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = key

	resp, err := h.walletService.Adjust(c.Request.Context(), actor, c.Param("accountID"), req)
	if err != nil {
		respondWithError(c, err, "post adjustment")
		return
	}
	writeIdempotent(c, resp.Replayed, resp)
}

// writeIdempotent answers 201 for a fresh execution and 200 for a replay.
func writeIdempotent(c *gin.Context, replayed bool, body any) {
	if replayed {
		c.Header(ReplayedHeader, "true")
		c.JSON(http.StatusOK, body)
		return
	}
	c.JSON(http.StatusCreated, body)
}
