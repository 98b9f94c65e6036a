package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

const loginLogLimit = 100

// AdminHandler exposes the management surface: user provisioning, license
// renewal, IP blocks and the login log. All routes sit behind the session
// validator plus the admin role gate.
type AdminHandler struct {
	userService  ports.UserService
	auditService ports.AuditService
	blocks       ports.IPBlockRepository
}

func NewAdminHandler(userService ports.UserService, auditService ports.AuditService, blocks ports.IPBlockRepository) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService, blocks: blocks}
}

type createUserRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	LicenseDays int    `json:"licenseDays" validate:"required,gt=0"`
}

type renewLicenseRequest struct {
	LicenseDays int `json:"licenseDays" validate:"gte=0"`
}

type blockIPRequest struct {
	IP     string `json:"ip" validate:"required,ip"`
	Reason string `json:"reason"`
	// Days limits the block; zero or absent means permanent.
	Days int `json:"days" validate:"gte=0"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreateUser provisions a licensed user. Users never self-register.
//
// @Summary      Create user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		Password:    req.Password,
		LicenseDays: req.LicenseDays,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ListUsers returns all users with remaining license days precomputed.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user plus their recent login history.
func (h *AdminHandler) GetUser(c echo.Context) error {
	detail, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// DeleteUser removes a user; their audit records remain with a dangling id
// until the retention sweep claims them.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "user deleted"})
}

// RenewLicense sets the user's license to expire licenseDays from now.
func (h *AdminHandler) RenewLicense(c echo.Context) error {
	var req renewLicenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userService.RenewLicense(c.Request().Context(), c.Param("id"), req.LicenseDays); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "license renewed"})
}

// LicenseStats aggregates license state for the dashboard.
func (h *AdminHandler) LicenseStats(c echo.Context) error {
	stats, err := h.userService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// BlockIP inserts or replaces a block entry for an address.
//
// @Summary      Block IP
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      blockIPRequest  true  "Block entry"
// @Success      200   {object}  successResponse
// @Router       /admin/blocked-ips [post]
func (h *AdminHandler) BlockIP(c echo.Context) error {
	var req blockIPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now().UTC()
	block := &domain.IPBlock{
		IP:        req.IP,
		Reason:    req.Reason,
		BlockedAt: now,
	}
	if block.Reason == "" {
		block.Reason = "not specified"
	}
	if req.Days > 0 {
		expires := now.Add(time.Duration(req.Days) * 24 * time.Hour)
		block.ExpiresAt = &expires
	}

	if err := h.blocks.Upsert(c.Request().Context(), block); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "ip blocked"})
}

// UnblockIP removes a block entry.
func (h *AdminHandler) UnblockIP(c echo.Context) error {
	affected, err := h.blocks.Delete(c.Request().Context(), c.Param("ip"))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrIPBlockNotFound
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "ip unblocked"})
}

// ListBlockedIPs returns all block entries, newest first. Expired entries
// appear too: they stop applying without being deleted.
func (h *AdminHandler) ListBlockedIPs(c echo.Context) error {
	blocks, err := h.blocks.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blocks)
}

// LoginLogs returns the newest login attempts joined to user display names.
func (h *AdminHandler) LoginLogs(c echo.Context) error {
	logs, err := h.auditService.RecentAttempts(c.Request().Context(), loginLogLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}
