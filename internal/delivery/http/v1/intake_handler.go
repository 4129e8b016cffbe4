package v1

import (
	"net/http"
	"strconv"

	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	profileUC  domain.ProfileUsecase
	resourceUC domain.ResourceUsecase
}

func NewIntakeHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase, resourceUC domain.ResourceUsecase) {
	handler := &IntakeHandler{profileUC: profileUC, resourceUC: resourceUC}

	// Reads are open; the frontend lists resources before staff sign in
	public.GET("/profiles/:id", handler.GetProfile)
	public.GET("/profiles", handler.ListProfiles)
	public.GET("/shelters", handler.ListShelters)
	public.GET("/jobs", handler.ListJobs)

	protected.POST("/profiles", handler.CreateProfile)
	protected.PUT("/profiles/:id", handler.UpdateProfile)
	protected.POST("/shelters", handler.CreateShelter)
	protected.POST("/jobs", handler.CreateJob)
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}

// CreateProfile godoc
// @Summary      Register an aid-seeking profile
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.Profile  true  "Profile JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /profiles [post]
// @Security     BearerAuth
func (h *IntakeHandler) CreateProfile(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.CreateProfile(c.Request.Context(), &profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created", profile)
}

// GetProfile godoc
// @Summary      Get a profile by id
// @Tags         intake
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id} [get]
func (h *IntakeHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("id must be a positive integer"))
		return
	}

	profile, err := h.profileUC.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// ListProfiles godoc
// @Summary      List profiles
// @Tags         intake
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /profiles [get]
func (h *IntakeHandler) ListProfiles(c *gin.Context) {
	page, pageSize := pagination(c)
	profiles, total, err := h.profileUC.ListProfiles(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profiles retrieved", gin.H{
		"profiles": profiles,
		"meta":     listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// UpdateProfile godoc
// @Summary      Update a profile
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Profile ID"
// @Param        profile  body      domain.Profile  true  "Profile JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id} [put]
// @Security     BearerAuth
func (h *IntakeHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("id must be a positive integer"))
		return
	}

	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	profile.ID = id

	if err := h.profileUC.UpdateProfile(c.Request.Context(), &profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// CreateShelter godoc
// @Summary      Register a shelter
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        shelter  body      domain.Shelter  true  "Shelter JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /shelters [post]
// @Security     BearerAuth
func (h *IntakeHandler) CreateShelter(c *gin.Context) {
	var shelter domain.Shelter
	if err := c.ShouldBindJSON(&shelter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.resourceUC.CreateShelter(c.Request.Context(), &shelter); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Shelter created", shelter)
}

// ListShelters godoc
// @Summary      List shelters
// @Tags         intake
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /shelters [get]
func (h *IntakeHandler) ListShelters(c *gin.Context) {
	page, pageSize := pagination(c)
	shelters, total, err := h.resourceUC.ListShelters(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Shelters retrieved", gin.H{
		"shelters": shelters,
		"meta":     listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// CreateJob godoc
// @Summary      Register a job opening
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        job  body      domain.Job  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *IntakeHandler) CreateJob(c *gin.Context) {
	var job domain.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.resourceUC.CreateJob(c.Request.Context(), &job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListJobs godoc
// @Summary      List job openings
// @Tags         intake
// @Produce      json
// @Param        page       query     int  false  "Page"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *IntakeHandler) ListJobs(c *gin.Context) {
	page, pageSize := pagination(c)
	jobs, total, err := h.resourceUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", gin.H{
		"jobs": jobs,
		"meta": listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}
