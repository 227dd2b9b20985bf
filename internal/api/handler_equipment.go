package api

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/filter"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// dateRe checks the shape of a lastCleanedDate value. It accepts
// out-of-range components such as month 13 or day 32; tightening this
// is a pending product decision, so the pattern stays syntactic.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// equipmentRequest is the payload for create and update. The id is never
// part of the body; it is assigned by the store or taken from the path.
type equipmentRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	LastCleanedDate string `json:"lastCleanedDate"`
}

// validate checks the payload and returns a field-specific message for
// the first rule that fails.
func (r *equipmentRequest) validate() string {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return "name is required and must be at least 2 characters"
	}
	if !model.EquipmentType(r.Type).Valid() {
		return "type must be one of Machine, Vessel, Tank, Mixer"
	}
	if !model.EquipmentStatus(r.Status).Valid() {
		return "status must be one of Active, Inactive, Under Maintenance"
	}
	if r.LastCleanedDate == "" {
		return "lastCleanedDate is required"
	}
	if !dateRe.MatchString(r.LastCleanedDate) {
		return "lastCleanedDate must be in YYYY-MM-DD format"
	}
	return ""
}

func (r *equipmentRequest) toModel() model.Equipment {
	return model.Equipment{
		Name:            strings.TrimSpace(r.Name),
		Type:            model.EquipmentType(r.Type),
		Status:          model.EquipmentStatus(r.Status),
		LastCleanedDate: r.LastCleanedDate,
	}
}

// equipmentID parses the :id path parameter as a positive integer.
func equipmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid equipment id"})
		return 0, false
	}
	return id, true
}

// ListEquipment handles GET /equipment. The optional q, status, and sort
// query parameters run the in-memory filter pipeline over the full set.
func (h *Handler) ListEquipment(c *gin.Context) {
	records, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		log.Printf("Error listing equipment: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve equipment"})
		return
	}

	q := filter.Query{
		Search: c.Query("q"),
		Status: c.Query("status"),
		Sort:   filter.SortKey(c.Query("sort")),
	}
	c.JSON(http.StatusOK, filter.Apply(records, q))
}

// CreateEquipment handles POST /equipment.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	record := req.toModel()
	if err := h.store.CreateEquipment(c.Request.Context(), &record); err != nil {
		log.Printf("Error creating equipment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create equipment"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdateEquipment handles PUT /equipment/:id. All fields are overwritten;
// the id is immutable.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := equipmentID(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	record := req.toModel()
	record.ID = id
	err := h.store.UpdateEquipment(c.Request.Context(), &record)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "equipment not found"})
		return
	}
	if err != nil {
		log.Printf("Error updating equipment %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update equipment"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteEquipment handles DELETE /equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := equipmentID(c)
	if !ok {
		return
	}

	err := h.store.DeleteEquipment(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "equipment not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting equipment %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete equipment"})
		return
	}

	c.Status(http.StatusNoContent)
}
