// routes/routes.go
package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ewaste/middlewares"
	"ewaste/models"
	"ewaste/utils"
)

// dependency injection container
type deps struct {
	users    models.UserRepository
	events   models.EventRepository
	dropoffs models.DropOffRepository
	inv      *utils.CacheInvalidator
}

// RegisterRoutes mounts the /api surface. Repositories come in from main so
// handlers never touch a concrete store.
func RegisterRoutes(
	server *gin.Engine,
	u models.UserRepository,
	e models.EventRepository,
	dr models.DropOffRepository,
	rdb *redis.Client,
	inv *utils.CacheInvalidator,
) {
	d := &deps{users: u, events: e, dropoffs: dr, inv: inv}

	// global per-IP limit
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	api := server.Group("/api")

	// credential endpoints get a tighter per-IP limit
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	limitByIP := func(prefix string) gin.HandlerFunc {
		return authLimiter.Middleware(func(c *gin.Context) string {
			return prefix + ":" + c.ClientIP()
		})
	}

	api.POST("/users/register", limitByIP("register"), d.registerUser)
	api.POST("/users/login", limitByIP("login"), d.loginUser)
	api.POST("/admin/register", limitByIP("register"), d.registerAdmin)
	api.POST("/admin/login", limitByIP("login"), d.loginAdmin)

	// public event list (response-cached upstream)
	api.GET("/events", d.getEvents)

	// authenticated endpoints: per-user limit + daily quota
	authed := api.Group("/")
	authed.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	authed.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))
	authed.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return "quota:user:" + strconv.FormatInt(uid, 10) + ":day"
		},
	}))

	authed.GET("/users/me", d.me)
	authed.POST("/dropoff", d.submitDropOff)

	// admin-only endpoints
	admin := authed.Group("/")
	admin.Use(middlewares.RequireAdmin)
	admin.POST("/events", d.createEvent)
	admin.DELETE("/events/:id", d.deleteEvent)
	admin.GET("/events/:id/dropoffs", d.listDropOffs)
}

/* --------------------- Auth --------------------- */

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (d *deps) register(c *gin.Context, asAdmin bool, okMsg string) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	u := models.User{Email: req.Email, Password: req.Password, IsAdmin: asAdmin}
	if err := d.users.Create(&u); err != nil {
		if err == models.ErrDuplicateEmail {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": okMsg})
}

// POST /api/users/register
func (d *deps) registerUser(c *gin.Context) {
	d.register(c, false, "User registered")
}

// POST /api/admin/register
func (d *deps) registerAdmin(c *gin.Context) {
	d.register(c, true, "Admin registered")
}

// POST /api/users/login
func (d *deps) loginUser(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"rewards": user.Rewards,
		"isAdmin": user.IsAdmin,
	})
}

// POST /api/admin/login
// Same 401 whether the account is unknown, the password is wrong, or the
// account simply is not an admin.
func (d *deps) loginAdmin(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil || !user.IsAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid admin credentials"})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "isAdmin": true})
}

// GET /api/users/me
func (d *deps) me(c *gin.Context) {
	user, err := d.users.GetByID(c.GetInt64("userId"))
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":   user.Email,
		"rewards": user.Rewards,
		"isAdmin": user.IsAdmin,
	})
}
