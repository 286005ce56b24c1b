package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
	"github.com/dmitrijs2005/carsapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

// VehicleHandler serves the car resource.
type VehicleHandler struct {
	vehicles *services.VehicleService
	logger   logging.Logger
}

func NewVehicleHandler(vs *services.VehicleService, l logging.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vs, logger: l.With("module", "vehicle_handler")}
}

func (h *VehicleHandler) List(c *gin.Context, out auth.Outcome) {
	cars, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, out, http.StatusOK, cars)
}

func (h *VehicleHandler) Create(c *gin.Context, out auth.Outcome) {
	var in models.CarFields
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	car, err := h.vehicles.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, out, http.StatusCreated, car)
}

func (h *VehicleHandler) Get(c *gin.Context, out auth.Outcome) {
	id, ok := carID(c)
	if !ok {
		writeError(c, h.logger, common.ErrorNotFound)
		return
	}

	car, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, out, http.StatusOK, car)
}

func (h *VehicleHandler) Replace(c *gin.Context, out auth.Outcome) {
	h.update(c, out, h.vehicles.Replace)
}

func (h *VehicleHandler) Patch(c *gin.Context, out auth.Outcome) {
	h.update(c, out, h.vehicles.Patch)
}

type updateFunc func(ctx context.Context, id int64, in models.CarFields) (*models.Car, error)

func (h *VehicleHandler) update(c *gin.Context, out auth.Outcome, fn updateFunc) {
	id, ok := carID(c)
	if !ok {
		writeError(c, h.logger, common.ErrorNotFound)
		return
	}

	var in models.CarFields
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	car, err := fn(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, out, http.StatusOK, car)
}

func (h *VehicleHandler) Delete(c *gin.Context, out auth.Outcome) {
	id, ok := carID(c)
	if !ok {
		writeError(c, h.logger, common.ErrorNotFound)
		return
	}

	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, out, http.StatusNoContent, nil)
}

// carID parses the :id path segment; anything but a positive integer is
// treated as an unknown car.
func carID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
