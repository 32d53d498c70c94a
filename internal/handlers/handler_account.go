package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	userService    portssvc.UserReaderSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, us portssvc.UserReaderSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		userService:    us,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, userService portssvc.UserReaderSvc) {
	h := newAccountHandler(accountService, userService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/balance", h.getTotalBalance)
		accounts.GET("/:iban/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens a zero-balance account with a generated IBAN for the logged-in user
// @Tags accounts
// @Produce  json
// @Success 201 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("iban", account.IBAN))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every account of the logged-in user ordered by IBAN
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getTotalBalance godoc
// @Summary Get total balance
// @Description Sums the balances of every account held by the logged-in user
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get total balance"
// @Security BearerAuth
// @Router /accounts/balance [get]
func (h *accountHandler) getTotalBalance(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	total, err := h.accountService.GetOwnerTotalBalance(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to get total balance")
		return
	}

	c.JSON(http.StatusOK, dto.TotalBalanceResponse{Balance: total})
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Returns the balance of one of the logged-in user's accounts
// @Tags accounts
// @Produce  json
// @Param   iban path string true "Account IBAN"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found for your user"
// @Failure 500 {object} map[string]string "Failed to get account balance"
// @Security BearerAuth
// @Router /accounts/{iban}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	iban := c.Param("iban")

	ownerID, ok := resolveOwner(c, h.userService)
	if !ok {
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), iban, ownerID)
	if err != nil {
		respondError(c, err, "Failed to get account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{IBAN: iban, Balance: balance})
}
