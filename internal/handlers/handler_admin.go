package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/dto"
	"github.com/rsinghcodes/banking_system/internal/middleware"
)

// adminHandler handles administrative operations: freezing accounts,
// deactivating users and reading the audit log.
type adminHandler struct {
	accountService portssvc.AccountSvcFacade
	userService    portssvc.UserSvcFacade
	auditService   portssvc.AuditSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(as portssvc.AccountSvcFacade, us portssvc.UserSvcFacade, aus portssvc.AuditSvcFacade) *adminHandler {
	return &adminHandler{
		accountService: as,
		userService:    us,
		auditService:   aus,
	}
}

// registerAdminRoutes registers administrative routes.
func registerAdminRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, us portssvc.UserSvcFacade, aus portssvc.AuditSvcFacade) {
	h := newAdminHandler(as, us, aus)

	admin := rg.Group("/admin")
	{
		admin.PUT("/accounts/:accountNumber/status", h.updateAccountStatus)
		admin.PUT("/users/:userID/status", h.updateUserStatus)
		admin.GET("/audit-logs", h.listAuditLogs)
	}
}

// updateAccountStatus freezes or unfreezes an account and records the action
// in the audit log.
func (h *adminHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Admin user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccountStatus(c.Request.Context(), accountNumber, req.Status, adminUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to update account status", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account status"})
		return
	}

	action := "ACCOUNT_FROZEN"
	if req.Status == domain.AccountActive {
		action = "ACCOUNT_UNFROZEN"
	}
	details := fmt.Sprintf("Account: %s, Status: %s", accountNumber, req.Status)
	if err := h.auditService.LogAction(c.Request.Context(), action, adminUserID, details); err != nil {
		// The status change already took effect; don't fail the request.
		logger.Error("Failed to write audit entry", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
	}

	logger.Info("Account status updated",
		slog.String("account_number", accountNumber),
		slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateUserStatus activates or deactivates a user.
func (h *adminHandler) updateUserStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Admin user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.SetUserStatus(c.Request.Context(), userID, req.Status, adminUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to update user status", slog.String("target_user_id", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}

	logger.Info("User status updated",
		slog.String("target_user_id", userID),
		slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, gin.H{"userID": userID, "status": req.Status})
}

// listAuditLogs returns all audit entries, newest first.
func (h *adminHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.auditService.ListLogs(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list audit logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auditLogs": dto.ToListAuditLogResponse(entries)})
}
