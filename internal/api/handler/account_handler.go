package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/api/metrics"
	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

// AccountHandler handles HTTP requests for a caller's own bank accounts.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type accountRequest struct {
	IFSCCode          string `json:"ifscCode"          validate:"required,ifsc"`
	BranchName        string `json:"branchName"        validate:"required,max=100"`
	BankName          string `json:"bankName"          validate:"required,max=100"`
	AccountNumber     string `json:"accountNumber"     validate:"required,accnum"`
	AccountHolderName string `json:"accountHolderName" validate:"required,max=100"`
}

func (r accountRequest) toInput() ports.AccountInput {
	return ports.AccountInput{
		IFSCCode:          r.IFSCCode,
		BranchName:        r.BranchName,
		BankName:          r.BankName,
		AccountNumber:     r.AccountNumber,
		AccountHolderName: r.AccountHolderName,
	}
}

type accountResponse struct {
	Success bool                `json:"success"`
	Data    *domain.BankAccount `json:"data"`
}

type accountListResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Data    []domain.BankAccount `json:"data"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// Create handles POST /bank-accounts.
//
// @Summary      Add a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      accountRequest  true  "Bank account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /bank-accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Msg: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Msg: err.Error()})
	}

	account, err := h.service.Create(c.Request().Context(), identity.UserID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return c.JSON(http.StatusBadRequest, errorResponse{Msg: err.Error()})
		}
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, accountResponse{Success: true, Data: account})
}

// List handles GET /bank-accounts, scoped to the caller's own records.
//
// @Summary      List own bank accounts
// @Tags         bank-accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountListResponse
// @Failure      401  {object}  errorResponse
// @Router       /bank-accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	accounts, err := h.service.ListOwned(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountListResponse{Success: true, Count: len(accounts), Data: accounts})
}

// Update handles PUT /bank-accounts/:id.
//
// @Summary      Update a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Bank account id"
// @Param        body  body      accountRequest  true  "Updated fields"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bank-accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Msg: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Msg: err.Error()})
	}

	account, err := h.service.Update(c.Request().Context(), c.Param("id"), identity.UserID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Msg: "Bank account not found"})
		case errors.Is(err, domain.ErrNotAccountOwner):
			return c.JSON(http.StatusUnauthorized, errorResponse{Msg: "Not authorized to update this bank account"})
		case errors.Is(err, domain.ErrDuplicateAccount):
			return c.JSON(http.StatusBadRequest, errorResponse{Msg: err.Error()})
		}
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, accountResponse{Success: true, Data: account})
}

// Delete handles DELETE /bank-accounts/:id.
//
// @Summary      Delete a bank account
// @Tags         bank-accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Bank account id"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bank-accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Msg: "Bank account not found"})
		case errors.Is(err, domain.ErrNotAccountOwner):
			return c.JSON(http.StatusUnauthorized, errorResponse{Msg: "Not authorized to delete this bank account"})
		}
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, deleteResponse{Success: true, Msg: "Bank account removed"})
}
