package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pocketfolio/backend/internal/auth"
	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuth)
	r.POST("/register", Register)

	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authentication
// @Success		204
// @Router			/v1/auth/register [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register
// @Description	Creates a new user account and returns a bearer token for it
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		201			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	if strings.TrimSpace(credentials.Email) == "" {
		e := errEmailNotSet.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &e})
		return
	}

	if len(credentials.Password) < 8 {
		e := errPasswordTooShort.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &e})
		return
	}

	hash, err := auth.HashPassword(credentials.Password)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &e})
		return
	}

	user := models.User{
		Email:        credentials.Email,
		PasswordHash: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	// Every user gets an empty profile on registration
	err = models.DB.Create(&models.Profile{OwnerID: user.ID}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	session, err := newSession(user)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Data: &session})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a bearer token
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.Where(&models.User{Email: strings.ToLower(strings.TrimSpace(credentials.Email))}).First(&user).Error
	if err != nil {
		// A missing user and a wrong password are indistinguishable on
		// purpose
		if errors.Is(err, models.ErrResourceNotFound) {
			err = models.ErrCredentialsInvalid
		}

		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	err = auth.CheckPassword(user.PasswordHash, credentials.Password)
	if err != nil {
		e := models.ErrCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{Error: &e})
		return
	}

	session, err := newSession(user)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &session})
}
