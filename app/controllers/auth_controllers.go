package controllers

import (
	"errors"
	"net/http"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/services"
	"github.com/novastreet/storefront/pkg/bind"
	"github.com/novastreet/storefront/pkg/logger"
	"github.com/novastreet/storefront/pkg/response"
	"github.com/novastreet/storefront/pkg/session"
)

// AuthController signs shoppers up and in. A successful login both returns a
// Bearer token (API callers) and marks the session cookie signed-in (the
// storefront pages).
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput

	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Register(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, "Email already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("register user", "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to register")
		return
	}

	c.signIn(w, r, user)
	response.Created(w, authPayload{Token: token, User: user})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput

	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Login(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(w)
			return
		}
		logger.WithCtx(r.Context()).Error("login user", "error", err)
		response.Error(w, http.StatusInternalServerError, "Unable to sign in")
		return
	}

	c.signIn(w, r, user)
	response.Success(w, authPayload{Token: token, User: user})
}

// Logout handles POST /auth/logout.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("invalidate session", "error", err)
	}
	response.Success(w, map[string]string{"message": "Signed out"})
}

func (c *AuthController) signIn(w http.ResponseWriter, r *http.Request, user models.User) {
	sess := session.FromCtx(r)
	sess.Regenerate()
	sess.Set("user_id", user.ID.Hex())
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("save session", "error", err)
	}
}
