package handlers

import (
	"net/http"

	"staywise/services/recommend"
	"staywise/utils"

	"github.com/gin-gonic/gin"
)

// RecommendHandler serves the natural-language room recommendation endpoint.
type RecommendHandler struct {
	Recommender *recommend.Service
}

func NewRecommendHandler(svc *recommend.Service) *RecommendHandler {
	return &RecommendHandler{Recommender: svc}
}

func (h *RecommendHandler) RecommendRoomsHandler(c *gin.Context) {
	var input struct {
		StartDate    string `json:"startDate" binding:"required"`
		EndDate      string `json:"endDate" binding:"required"`
		MinOccupancy int    `json:"minOccupancy"`
		Preferences  string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	text, err := h.Recommender.RecommendRooms(c.Request.Context(), input.StartDate, input.EndDate, input.MinOccupancy, input.Preferences)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": text})
}
