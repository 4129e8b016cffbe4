package v1

import (
	"net/http"

	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsUC usecase.StatsUsecase
}

func NewStatsHandler(public *gin.RouterGroup, statsUC usecase.StatsUsecase) {
	handler := &StatsHandler{statsUC: statsUC}
	public.GET("/statistics", handler.Get)
}

// Get godoc
// @Summary      Operational statistics
// @Description  Entity counts plus the active scoring configuration
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /statistics [get]
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.statsUC.GetStatistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}
