package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/gatesvc/domain"
)

// GateHandlers handles gate opening HTTP requests
type GateHandlers struct {
	opener   domain.GateOpener
	userRepo domain.UserRepository
}

// NewGateHandlers creates new gate handlers
func NewGateHandlers(opener domain.GateOpener, userRepo domain.UserRepository) *GateHandlers {
	return &GateHandlers{opener: opener, userRepo: userRepo}
}

// OpenRequest represents a manual gate open request
type OpenRequest struct {
	Password string `json:"password"`
}

// currentUser resolves the authenticated user placed in context by the
// auth middleware. A false return means the response is already written.
func currentUser(c *gin.Context, userRepo domain.UserRepository) (*domain.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return nil, false
	}

	user, err := userRepo.FindByID(c.Request.Context(), userID.(uint))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return nil, false
	}
	return user, true
}

func gateIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gate ID"})
		return 0, false
	}
	return uint(id), true
}

// writeOpenError translates gate opener guard failures to HTTP statuses
func writeOpenError(c *gin.Context, err error) {
	var maintenance *domain.MaintenanceError
	var cooldown *domain.CooldownActiveError

	switch {
	case errors.As(err, &maintenance):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "System under maintenance", "message": maintenance.Message})
	case errors.As(err, &cooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Gate cooldown active", "remaining_seconds": cooldown.RemainingSeconds})
	case errors.Is(err, domain.ErrGateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Gate not found"})
	case errors.Is(err, domain.ErrGateForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this gate"})
	case errors.Is(err, domain.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Retry limit reached, try again later"})
	case errors.Is(err, domain.ErrWrongPassword):
		c.JSON(http.StatusForbidden, gin.H{"error": "Wrong gate password"})
	case errors.Is(err, domain.ErrLowBalance):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Account balance too low to place calls"})
	case errors.Is(err, domain.ErrProviderFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Call provider failure"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gate open failed"})
	}
}

// Open handles POST /gates/:id/open
func (h *GateHandlers) Open(c *gin.Context) {
	gateID, ok := gateIDParam(c)
	if !ok {
		return
	}

	// The password field is optional, so an empty body is accepted.
	var req OpenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	result, err := h.opener.AttemptOpen(c.Request.Context(), user, gateID, req.Password, false)
	if err != nil {
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

// Cooldown handles GET /gates/:id/cooldown.
// The dashboard polls this to render the countdown; the value comes from
// the same computation that enforces the cooldown on open.
func (h *GateHandlers) Cooldown(c *gin.Context) {
	gateID, ok := gateIDParam(c)
	if !ok {
		return
	}

	remaining, err := h.opener.RemainingCooldown(c.Request.Context(), gateID)
	if err != nil {
		if errors.Is(err, domain.ErrGateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cooldown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"gate_id":           gateID,
			"remaining_seconds": remaining,
		},
	})
}
