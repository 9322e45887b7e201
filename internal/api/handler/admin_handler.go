package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/api/metrics"
	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

// AdminHandler handles the admin-only cross-user search surface.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type adminListResponse struct {
	Success bool                      `json:"success"`
	Count   int                       `json:"count"`
	Data    []domain.AdminAccountView `json:"data"`
}

// Search handles GET /admin/bank-accounts with optional filters.
//
// @Summary      Search bank accounts across all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "Owner username substring (case-insensitive)"
// @Param        email     query     string  false  "Owner email substring (case-insensitive)"
// @Param        bankName  query     string  false  "Bank name substring (case-insensitive)"
// @Param        ifscCode  query     string  false  "IFSC code substring (case-insensitive)"
// @Success      200  {object}  adminListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/bank-accounts [get]
func (h *AdminHandler) Search(c echo.Context) error {
	views, err := h.service.SearchAccounts(c.Request().Context(), ports.AdminSearchInput{
		Username: c.QueryParam("username"),
		Email:    c.QueryParam("email"),
		BankName: c.QueryParam("bankName"),
		IFSCCode: c.QueryParam("ifscCode"),
	})
	if err != nil {
		return err
	}

	metrics.AdminSearchesTotal.Inc()

	return c.JSON(http.StatusOK, adminListResponse{Success: true, Count: len(views), Data: views})
}
