package session

import (
	"net/http"
	"strings"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenFromRequest reads the session token from a Bearer header, falling back to the cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

type Handler struct {
	service    Service
	cookieName string
	secure     bool
	logger     *zap.Logger
}

func NewHandler(service Service, cookieName string, secure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("session.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.handler")
	}
	return &Handler{service: service, cookieName: cookieName, secure: secure, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("session request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http login validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid input",
			map[string]string{"passcode": "Passcode is required"})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Passcode)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Session cookie: no MaxAge, so it ends with the browser session.
	h.setCookie(c, resp.Token, 0)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	token := TokenFromRequest(c, h.cookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

func (h *Handler) Status(c *gin.Context) {
	token := TokenFromRequest(c, h.cookieName)
	if token == "" {
		response.Success(c, http.StatusOK, StatusResponse{Authenticated: false}, nil)
		return
	}

	sess, err := h.service.Resolve(c.Request.Context(), token)
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.HTTPStatus == http.StatusUnauthorized {
			response.Success(c, http.StatusOK, StatusResponse{Authenticated: false}, nil)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	resp := StatusResponse{Authenticated: sess.IsActive(), SessionID: sess.ID()}
	if exp := sess.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	response.Success(c, http.StatusOK, resp, nil)
}
