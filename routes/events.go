package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ewaste/models"
)

/* -------------------- Events -------------------- */

// GET /api/events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch events. Try again later."})
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /api/events (admin)
func (d *deps) createEvent(c *gin.Context) {
	var req struct {
		Date        time.Time `json:"date" binding:"required"`
		Location    string    `json:"location" binding:"required"`
		Description string    `json:"description"`
		EventType   string    `json:"eventType"`
		Capacity    int       `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	event := models.Event{
		ID:          uuid.NewString(), // shared key with the SQL dropoffs table
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		EventType:   req.EventType,
		Capacity:    req.Capacity,
	}
	if err := d.events.Create(&event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create event. Try again later."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}
	c.JSON(http.StatusCreated, event)
}

// DELETE /api/events/:id (admin)
// Ledger rows go first: a failure in between leaves fewer drop-offs, never
// an orphaned one.
func (d *deps) deleteEvent(c *gin.Context) {
	id := c.Param("id")

	if err := d.dropoffs.DeleteByEvent(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the event."})
		return
	}
	if err := d.events.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete the event."})
		return
	}

	if d.inv != nil {
		d.inv.PurgeEventsList(c)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event and related drop-offs deleted"})
}
