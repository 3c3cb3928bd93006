package controller

import (
	"net/http"
	"strings"

	"github.com/Scalingo/sclng-profile-readme/model"
	"github.com/Scalingo/sclng-profile-readme/render"
	"github.com/Scalingo/sclng-profile-readme/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type APIController interface {
	GetProfileDocument(c *gin.Context)
	GetProfileStack(c *gin.Context)
}

type apiController struct {
	profileService service.ProfileService
	renderOptions  render.Options
}

func NewAPIController(profileService service.ProfileService, renderOptions render.Options) APIController {
	return apiController{
		profileService: profileService,
		renderOptions:  renderOptions,
	}
}

// GetProfileDocument renders the document generated for the account without writing it
func (s apiController) GetProfileDocument(c *gin.Context) {
	profile, ok := s.buildProfile(c)
	if !ok {
		return
	}

	document, err := render.Readme(profile, s.renderOptions)
	if err != nil {
		status, apiErr := model.NewAPIError(err)
		c.JSON(status, apiErr)
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(document))
}

// GetProfileStack returns the aggregated languages, topics and skipped repositories
func (s apiController) GetProfileStack(c *gin.Context) {
	profile, ok := s.buildProfile(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s apiController) buildProfile(c *gin.Context) (model.Profile, bool) {
	account := strings.TrimSpace(c.Param("account"))
	if account == "" {
		status, apiErr := model.NewAPIError(model.ErrUnresolvableAccount)
		c.JSON(status, apiErr)
		return model.Profile{}, false
	}

	profile, err := s.profileService.BuildProfile(c.Request.Context(), account)
	if err != nil {
		log.WithError(err).WithField("account", account).Warn("unable to build profile")

		status, apiErr := model.NewAPIError(err)
		c.JSON(status, apiErr)
		return model.Profile{}, false
	}

	return profile, true
}
