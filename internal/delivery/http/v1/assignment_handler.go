package v1

import (
	"net/http"
	"strconv"

	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentUC domain.AssignmentUsecase
}

func NewAssignmentHandler(protected *gin.RouterGroup, assignmentUC domain.AssignmentUsecase) {
	handler := &AssignmentHandler{assignmentUC: assignmentUC}

	assignments := protected.Group("/assignments")
	{
		assignments.POST("", handler.Create)
		assignments.GET("", handler.ListByProfile)
		assignments.POST("/:id/end", handler.End)
		assignments.POST("/:id/feedback", handler.Feedback)
	}
}

type CreateAssignmentRequest struct {
	ProfileID    int64   `json:"profile_id" binding:"required,gt=0"`
	ResourceID   int64   `json:"resource_id" binding:"required,gt=0"`
	ResourceType string  `json:"resource_type" binding:"required,oneof=shelter job"`
	Score        float64 `json:"score" binding:"gte=0,lte=1"`
}

type FeedbackRequest struct {
	Success bool     `json:"success"`
	Score   *float64 `json:"score"`
}

// Create godoc
// @Summary      Accept a recommendation
// @Description  Claims capacity on the resource and creates an active assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body      CreateAssignmentRequest  true  "Assignment JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /assignments [post]
// @Security     BearerAuth
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	assignment, err := h.assignmentUC.Assign(c.Request.Context(), req.ProfileID, req.ResourceID, req.ResourceType, req.Score)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Assignment created", assignment)
}

// End godoc
// @Summary      End an assignment
// @Description  Marks the assignment ended. Resource capacity is not released.
// @Tags         assignments
// @Produce      json
// @Param        id   path      string  true  "Assignment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /assignments/{id}/end [post]
// @Security     BearerAuth
func (h *AssignmentHandler) End(c *gin.Context) {
	id := c.Param("id")
	if err := h.assignmentUC.End(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Assignment ended", nil)
}

// Feedback godoc
// @Summary      Record assignment outcome
// @Description  Stores whether the placement worked out, with an optional score
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id        path      string           true  "Assignment ID"
// @Param        feedback  body      FeedbackRequest  true  "Feedback JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /assignments/{id}/feedback [post]
// @Security     BearerAuth
func (h *AssignmentHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	id := c.Param("id")
	if err := h.assignmentUC.RecordOutcome(c.Request.Context(), id, req.Success, req.Score); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Outcome recorded", nil)
}

// ListByProfile godoc
// @Summary      List assignments for a profile
// @Tags         assignments
// @Produce      json
// @Param        profile_id  query     int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /assignments [get]
// @Security     BearerAuth
func (h *AssignmentHandler) ListByProfile(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Query("profile_id"), 10, 64)
	if err != nil || profileID < 1 {
		c.Error(apperror.BadRequest("profile_id must be a positive integer"))
		return
	}

	assignments, err := h.assignmentUC.ListByProfile(c.Request.Context(), profileID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assignments retrieved", assignments)
}
