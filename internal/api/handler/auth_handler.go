package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/api/metrics"
	"github.com/gamevault/license-server/internal/api/middleware"
	"github.com/gamevault/license-server/internal/core/domain"
	"github.com/gamevault/license-server/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user, checks license validity, and returns the
// session token plus the offline license bundle.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.LoginDuration.Observe(time.Since(start).Seconds()) }()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        middleware.ClientIP(c),
		UserAgent: c.Request().UserAgent(),
	}

	result, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(domain.ErrorKind(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, result)
}

// Me returns the current user with license remaining and a fresh offline
// license assertion. The game client's scene gate consumes this response.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.MeResult
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "identity missing from request context")
	}

	result, err := h.authService.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CheckLicense re-evaluates license state on demand and returns a freshly
// signed offline assertion either way.
//
// @Summary      Check license
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.LicenseStatus
// @Failure      401  {object}  map[string]string
// @Router       /auth/check-license [get]
func (h *AuthHandler) CheckLicense(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "identity missing from request context")
	}

	status, err := h.authService.CheckLicense(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
