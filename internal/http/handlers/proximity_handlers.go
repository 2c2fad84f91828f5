package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/services"
)

// ProximityHandlers handles location sampling and auto-open disambiguation
type ProximityHandlers struct {
	engine   domain.ProximityEngine
	userRepo domain.UserRepository
}

// NewProximityHandlers creates new proximity handlers
func NewProximityHandlers(engine domain.ProximityEngine, userRepo domain.UserRepository) *ProximityHandlers {
	return &ProximityHandlers{engine: engine, userRepo: userRepo}
}

// SampleRequest represents one device location reading
type SampleRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Accuracy  float64 `json:"accuracy"`
}

// SelectRequest represents a disambiguation pick
type SelectRequest struct {
	GateID   uint   `json:"gate_id" binding:"required"`
	Password string `json:"password"`
}

// sessionID returns the bearer session the proximity state is keyed by
func sessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return "", false
	}
	return id.(string), true
}

func candidatesJSON(candidates []domain.GateDistance) []gin.H {
	out := make([]gin.H, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, gin.H{
			"gate_id":         cand.Gate.ID,
			"name":            cand.Gate.Name,
			"address":         cand.Gate.Address,
			"distance_meters": cand.DistanceMeters,
			"distance":        services.FormatDistance(cand.DistanceMeters),
		})
	}
	return out
}

// Sample handles POST /proximity/sample
func (h *ProximityHandlers) Sample(c *gin.Context) {
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	sample := domain.LocationSample{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		Timestamp: time.Now().UTC(),
	}

	decision, err := h.engine.OnLocationSample(c.Request.Context(), user, sid, sample)
	if err != nil {
		writeOpenError(c, err)
		return
	}

	switch decision.Kind {
	case domain.DecisionAutoOpened:
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"decision":        decision.Kind,
				"gate_id":         decision.Opened.Gate.ID,
				"gate_name":       decision.Opened.Gate.Name,
				"distance_meters": decision.Opened.DistanceMeters,
				"call_sid":        decision.Result.CallSID,
				"opened_at":       decision.Result.OpenedAt,
			},
		})
	case domain.DecisionDisambiguationNeeded:
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"decision":   decision.Kind,
				"candidates": candidatesJSON(decision.Candidates),
			},
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"decision": decision.Kind,
			},
		})
	}
}

// Select handles POST /proximity/select
func (h *ProximityHandlers) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.engine.SelectCandidate(c.Request.Context(), user, sid, req.GateID, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotACandidate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Gate is not awaiting selection"})
			return
		}
		writeOpenError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":   "Gate opened",
			"gate_id":   result.Gate.ID,
			"gate_name": result.Gate.Name,
			"call_sid":  result.CallSID,
			"opened_at": result.OpenedAt,
		},
	})
}

// Dismiss handles POST /proximity/dismiss
func (h *ProximityHandlers) Dismiss(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.engine.CancelDisambiguation(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Disambiguation dismissed",
		},
	})
}
