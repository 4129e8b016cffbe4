package v1

import (
	"context"
	"net/http"
	"strconv"

	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recUC domain.RecommendationUsecase
}

func NewRecommendationHandler(public *gin.RouterGroup, recUC domain.RecommendationUsecase) {
	handler := &RecommendationHandler{recUC: recUC}

	recs := public.Group("/recommendations")
	{
		recs.GET("/shelters", handler.Shelters)
		recs.GET("/jobs", handler.Jobs)
	}
}

type recommendationList struct {
	ProfileID       int64                   `json:"profile_id"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// Shelters godoc
// @Summary      Recommend shelters for a profile
// @Description  Returns the top-k shelters ranked for the given profile
// @Tags         recommendations
// @Produce      json
// @Param        profile_id  query     int  true   "Profile ID"
// @Param        k           query     int  false  "Number of results"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recommendations/shelters [get]
func (h *RecommendationHandler) Shelters(c *gin.Context) {
	h.recommend(c, h.recUC.RecommendShelters)
}

// Jobs godoc
// @Summary      Recommend jobs for a profile
// @Description  Returns the top-k job openings ranked for the given profile
// @Tags         recommendations
// @Produce      json
// @Param        profile_id  query     int  true   "Profile ID"
// @Param        k           query     int  false  "Number of results"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /recommendations/jobs [get]
func (h *RecommendationHandler) Jobs(c *gin.Context) {
	h.recommend(c, h.recUC.RecommendJobs)
}

func (h *RecommendationHandler) recommend(c *gin.Context, fn func(ctx context.Context, profileID int64, k int) ([]domain.Recommendation, error)) {
	profileID, err := strconv.ParseInt(c.Query("profile_id"), 10, 64)
	if err != nil || profileID < 1 {
		c.Error(apperror.BadRequest("profile_id must be a positive integer"))
		return
	}

	// k falls back to the configured default when absent or invalid
	k := 0
	if raw := c.Query("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k < 1 {
			c.Error(apperror.BadRequest("k must be a positive integer"))
			return
		}
	}

	recs, err := fn(c.Request.Context(), profileID, k)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommendations generated", recommendationList{
		ProfileID:       profileID,
		Recommendations: recs,
	})
}
