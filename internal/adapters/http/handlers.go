package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/ExamRooms/internal/app/orch"
	"github.com/dkeye/ExamRooms/internal/core"
	"github.com/dkeye/ExamRooms/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const lastStudentsKey = "last_students"

type Handlers struct {
	Orch *orch.Orchestrator
}

type AddRoomRequest struct {
	RoomID       string `json:"roomId" binding:"required"`
	Capacity     *int   `json:"capacity" binding:"required"`
	FloorNo      *int   `json:"floorNo" binding:"required"`
	NearWashroom bool   `json:"nearWashroom"`
}

type AllocateRequest struct {
	Students *int `json:"students" binding:"required"`
}

type RoomsResponse struct {
	Rooms []domain.Room      `json:"rooms"`
	Stats domain.RosterStats `json:"stats"`
}

// GET /api/rooms
func (h *Handlers) ListRooms(c *gin.Context) {
	ev := h.Orch.Roster()
	rooms := ev.Rooms
	if rooms == nil {
		rooms = []domain.Room{}
	}
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms, Stats: ev.Stats})
}

// POST /api/rooms
func (h *Handlers) AddRoom(c *gin.Context) {
	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please enter valid room id, capacity and floor number.")
		return
	}
	room, err := domain.NewRoom(req.RoomID, *req.Capacity, *req.FloorNo, req.NearWashroom)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.Orch.AddRoom(c.Request.Context(), room); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// DELETE /api/rooms/:id
func (h *Handlers) RemoveRoom(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	if err := h.Orch.RemoveRoom(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/rooms
func (h *Handlers) ClearRooms(c *gin.Context) {
	if err := h.Orch.ClearRooms(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/allocations
func (h *Handlers) Allocate(c *gin.Context) {
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please enter a valid number of students.")
		return
	}

	if *req.Students > 0 {
		session := sessions.Default(c)
		session.Set(lastStudentsKey, *req.Students)
		if err := session.Save(); err != nil {
			log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
		}
	}

	h.allocate(c, *req.Students)
}

// GET /api/allocations/last re-runs the client's last request against the
// current roster.
func (h *Handlers) LastAllocation(c *gin.Context) {
	students, ok := sessions.Default(c).Get(lastStudentsKey).(int)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": "no_previous_allocation", "error": "no previous allocation"})
		return
	}
	h.allocate(c, students)
}

func (h *Handlers) allocate(c *gin.Context, students int) {
	alloc, err := h.Orch.Allocate(students)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, core.NewAllocationDTO(alloc))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, core.ErrorDTO{Code: core.CodeValidation, Error: msg})
}

func writeError(c *gin.Context, err error) {
	dto := core.DescribeError(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateRoomID), errors.Is(err, domain.ErrNoRoomsAvailable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientCapacity):
		status = http.StatusUnprocessableEntity
	default:
		log.Error().Err(err).Str("module", "adapters.http").Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, dto)
}
