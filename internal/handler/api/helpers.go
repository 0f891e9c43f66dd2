package api

import (
	"net/http"
	"time"

	resdto "local-deals/internal/handler/dto/response"
	"local-deals/internal/handler/httperr"
	"local-deals/internal/handler/middleware"
	"local-deals/internal/pkg/errs"
	"local-deals/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errNotAuthenticated = errs.Mark(errs.New("user not authenticated"), errs.ErrUnauthenticated)
	errInvalidID        = errs.New("invalid id")
)

// Clock is satisfied by clock.Clock; responses use it for expiry text.
type Clock interface {
	Now() time.Time
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrapf(errInvalidID, "param %s", name), "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNotAuthenticated, "User not authenticated", nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (commands.Actor, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNotAuthenticated, "User not authenticated", nil)
		return commands.Actor{}, false
	}
	return commands.Actor{UserID: p.UserID, Role: p.Role}, true
}

// viewerID is nil for anonymous callers on optionally authenticated routes.
func viewerID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.GetUserID(c); ok {
		return &id
	}
	return nil
}

func created(c *gin.Context, location string, id uuid.UUID) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}
