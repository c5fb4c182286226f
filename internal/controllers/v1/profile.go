package v1

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/storage"
)

// avatarSuffixes are the file types accepted for avatar uploads.
var avatarSuffixes = []string{".png", ".jpg", ".jpeg", ".webp"}

// RegisterProfileRoutes registers the routes for the user profile with
// the RouterGroup that is passed.
func RegisterProfileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsProfile)
	r.GET("", GetProfile)
	r.PATCH("", UpdateProfile)
	r.POST("/avatar", UploadAvatar)
}

// ProfileEditable represents all user configurable parameters
type ProfileEditable struct {
	FirstName string `json:"firstName" example:"Jane"` // First name
	LastName  string `json:"lastName" example:"Doe"`   // Last name
}

func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		FirstName: editable.FirstName,
		LastName:  editable.LastName,
	}
}

type Profile struct {
	models.DefaultModel
	ProfileEditable
	Email     string `json:"email" example:"jane@example.com"`                                                     // Email address of the user
	AvatarURL string `json:"avatarUrl" example:"/files/avatars/d430d7c3-d14c-4712-9336-ee56965a6673/b8239e9d.png"` // URL of the uploaded avatar, if any
}

func newProfileResource(model models.Profile, email string) Profile {
	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			FirstName: model.FirstName,
			LastName:  model.LastName,
		},
		Email:     email,
		AvatarURL: model.AvatarURL,
	}
}

type ProfileResponse struct {
	Data  *Profile `json:"data"`  // Data for the profile
	Error *string  `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profile
// @Success		204
// @Router			/v1/profile [options]
func OptionsProfile(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get profile
// @Description	Returns the authenticated user's profile
// @Tags			Profile
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		404	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Router			/v1/profile [get]
func GetProfile(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var profile models.Profile
	err := models.DB.First(&profile, "owner_id = ?", me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	data := newProfileResource(profile, me.Email)
	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}

// @Summary		Update profile
// @Description	Update the authenticated user's profile. Only values to be updated need to be specified.
// @Tags			Profile
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		404		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/profile [patch]
func UpdateProfile(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var profile models.Profile
	err := models.DB.First(&profile, "owner_id = ?", me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	var data ProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	r := newProfileResource(profile, me.Email)
	c.JSON(http.StatusOK, ProfileResponse{Data: &r})
}

// @Summary		Upload avatar
// @Description	Sets the user's avatar image, replacing an existing one
// @Tags			Profile
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		404		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			file	formData	file	true	"Avatar image"
// @Router			/v1/profile/avatar [post]
func UploadAvatar(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var profile models.Profile
	err := models.DB.First(&profile, "owner_id = ?", me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, ProfileResponse{Error: &s})
		return
	}

	if !slices.Contains(avatarSuffixes, strings.ToLower(filepath.Ext(header.Filename))) {
		s := fmt.Sprintf("%s: %s", errWrongFileSuffix.Error(), strings.Join(avatarSuffixes, ", "))
		c.JSON(http.StatusBadRequest, ProfileResponse{Error: &s})
		return
	}

	file, err := header.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, ProfileResponse{Error: &s})
		return
	}
	defer file.Close()

	url, err := files.Save(storage.BucketAvatars, me.UserID, header.Filename, file)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, ProfileResponse{Error: &s})
		return
	}

	previous := profile.AvatarURL
	err = models.DB.Model(&profile).Update("AvatarURL", url).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	if previous != "" {
		err = files.Delete(previous)
		if err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn().Err(err).Str("url", previous).Msg("could not remove replaced avatar")
		}
	}

	data := newProfileResource(profile, me.Email)
	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}
