package handlers

import (
	"net/http"
	"strconv"

	roomRepo "staywise/database/repository/room"
	"staywise/models"
	"staywise/services/availability"
	"staywise/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler serves the room catalog and availability search.
type RoomHandler struct {
	Rooms        roomRepo.RoomRepository
	Availability *availability.Resolver
}

func NewRoomHandler(rooms roomRepo.RoomRepository, resolver *availability.Resolver) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Availability: resolver}
}

// SearchAvailableHandler returns the rooms free for the requested stay, each
// with its quoted price.
func (h *RoomHandler) SearchAvailableHandler(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	minOccupancy := 0
	if raw := c.Query("minOccupancy"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid minOccupancy", raw)
			return
		}
		minOccupancy = n
	}

	quotes, err := h.Availability.Search(c.Request.Context(), startDate, endDate, minOccupancy)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (h *RoomHandler) GetAllRoomsHandler(c *gin.Context) {
	rooms, err := h.Rooms.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoomHandler(c *gin.Context) {
	room, err := h.Rooms.GetByRoomNr(c.Request.Context(), c.Param("roomNr"))
	if err != nil {
		h.roomError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) CreateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if room.RoomNr == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "roomNr is required")
		return
	}
	if err := h.Rooms.Create(c.Request.Context(), &room); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) UpdateRoomHandler(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	room.RoomNr = c.Param("roomNr")
	if err := h.Rooms.Update(c.Request.Context(), &room); err != nil {
		h.roomError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoomHandler(c *gin.Context) {
	if err := h.Rooms.Delete(c.Request.Context(), c.Param("roomNr")); err != nil {
		h.roomError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandler) roomError(c *gin.Context, err error) {
	if err == roomRepo.ErrNotFound {
		utils.JSONError(c, http.StatusNotFound, "room not found", "")
		return
	}
	utils.JSONDomainError(c, err)
}
