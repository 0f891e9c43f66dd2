package api

import (
	"net/http"
	"time"

	reqdto "local-deals/internal/handler/dto/request"
	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/config"
	"local-deals/internal/pkg/cookie"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/commands"
	"local-deals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingRefreshToken = errs.Mark(errs.New("refresh token required"), errs.ErrUnauthenticated)

// TokenLifetimes is satisfied by *jwt.Service.
type TokenLifetimes interface {
	AccessDuration() time.Duration
	RefreshDuration() time.Duration
}

type AuthHandler struct {
	commands  commands.AuthCommands
	users     queries.UserQueries
	cookies   config.CookieConfig
	lifetimes TokenLifetimes
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cookies config.CookieConfig, lifetimes TokenLifetimes) *AuthHandler {
	return &AuthHandler{
		commands:  cmds,
		users:     users,
		cookies:   cookies,
		lifetimes: lifetimes,
	}
}

// @Summary Register
// @Description Create a customer or business account. No session is started.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	reg, err := req.ToDomain()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid request data")
		return
	}

	user, err := h.commands.Register(c.Request.Context(), reg)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromUserView(user))
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	credentials, err := req.ToDomain()
	if err != nil {
		httperr.BadRequest(c, err, "Invalid request data")
		return
	}

	res, err := h.commands.Login(c.Request.Context(), credentials)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithTokens(c, res.TokenPair, res.User)
}

// @Summary Refresh tokens
// @Description Exchange a refresh token (body or cookie) for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh token"
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshRequest
	// An empty body is fine; the cookie is the fallback.
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingRefreshToken, "Refresh token required", nil)
		return
	}

	res, err := h.commands.Refresh(c.Request.Context(), token)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithTokens(c, res.TokenPair, res.User)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, pair *commands.TokenPair, user *queries.UserView) {
	cookie.SetTokenCookies(c, h.cookies, pair.AccessToken, pair.RefreshToken,
		h.lifetimes.AccessDuration(), h.lifetimes.RefreshDuration())
	c.JSON(http.StatusOK, resdto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         resdto.FromUserView(user),
	})
}

// @Summary User logout
// @Description Clears the session cookies. Bearer clients drop their token.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookies)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(user))
}
