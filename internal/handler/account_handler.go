package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leopardweb/registrar-api/internal/models"
	"github.com/leopardweb/registrar-api/internal/service"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
	"github.com/leopardweb/registrar-api/pkg/response"
)

// AccountHandler exposes admin account management endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new handler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create godoc
// @Summary Create account
// @Description Provision an account of any role with its profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body service.CreateAccountRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}

	detail, err := h.accounts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// Delete godoc
// @Summary Delete account
// @Description Remove an account with its profile and registrations
// @Tags Accounts
// @Produce json
// @Param username path string true "Username"
// @Success 204 {object} response.Envelope
// @Router /accounts/{username} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Get account
// @Description Fetch an account with its role profile
// @Tags Accounts
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /accounts/{username} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	detail, err := h.accounts.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// List godoc
// @Summary List accounts
// @Description List accounts, optionally filtered by role
// @Tags Accounts
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var role *models.AccountRole
	if raw := c.Query("role"); raw != "" {
		r := models.AccountRole(raw)
		role = &r
	}

	accounts, err := h.accounts.List(c.Request.Context(), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accounts, nil)
}
