package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste/models"
)

/* ------------------- Drop-offs ------------------- */

// POST /api/dropoff
func (d *deps) submitDropOff(c *gin.Context) {
	var req struct {
		EventID     string   `json:"eventId" binding:"required"`
		Electronics []string `json:"electronics"`
		Items       string   `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	// an absent electronics key must store as an empty list, not NULL
	if req.Electronics == nil {
		req.Electronics = []string{}
	}

	// the owning account comes from the verified token, never the body
	userID := c.GetInt64("userId")

	if _, err := d.events.GetByID(req.EventID); err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch event."})
		return
	}

	_, balance, err := d.dropoffs.Submit(userID, req.EventID, req.Electronics, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not register drop-off. Try again later."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Drop-off registered", "rewards": balance})
}

// GET /api/events/:id/dropoffs (admin)
func (d *deps) listDropOffs(c *gin.Context) {
	dropoffs, err := d.dropoffs.ListByEvent(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch drop-offs."})
		return
	}
	c.JSON(http.StatusOK, dropoffs)
}
