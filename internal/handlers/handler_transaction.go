package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	accountService portssvc.AccountSvcFacade
	userService    portssvc.UserReaderSvc
}

func newTransactionHandler(as portssvc.AccountSvcFacade, us portssvc.UserReaderSvc) *transactionHandler {
	return &transactionHandler{
		accountService: as,
		userService:    us,
	}
}

// RegisterTransactionRoutes registers the money movement and history routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserReaderSvc) {
	h := newTransactionHandler(accountService, userService)

	txns := rg.Group("/transactions")
	{
		txns.POST("/topUp", h.topUp)
		txns.POST("/send", h.sendMoney)
		txns.GET("/history", h.listTransactions)
	}
}

// topUp godoc
// @Summary Top up an account
// @Description Credits one of the logged-in user's accounts
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   topUp body dto.TopUpRequest true "Account and amount"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found for your user"
// @Failure 500 {object} map[string]string "Failed to top up account"
// @Security BearerAuth
// @Router /transactions/topUp [post]
func (h *transactionHandler) topUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TopUp", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	success, err := h.accountService.TopUp(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to top up account")
		return
	}

	c.JSON(http.StatusOK, dto.OperationResponse{Success: success})
}

// sendMoney godoc
// @Summary Send money
// @Description Moves money from one of the logged-in user's accounts to any existing account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   send body dto.SendMoneyRequest true "Sender, receiver and amount"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sender or receiver account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Failure 500 {object} map[string]string "Failed to send money"
// @Security BearerAuth
// @Router /transactions/send [post]
func (h *transactionHandler) sendMoney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendMoney", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	success, err := h.accountService.SendMoney(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to send money")
		return
	}

	c.JSON(http.StatusOK, dto.OperationResponse{Success: success})
}

// listTransactions godoc
// @Summary Transaction history
// @Description Lists transactions on the logged-in user's accounts, newest first.
// @Description Without limit or nextToken the whole history is returned in one response.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions/history [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	if params.Limit == 0 && params.NextToken == "" {
		txns, err := h.accountService.GetAllTransactions(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns})
		return
	}

	page, err := h.accountService.ListTransactions(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}
