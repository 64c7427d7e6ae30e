package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"Lexipic/middleware"
	"Lexipic/models"
	"Lexipic/pkg/config"
	tokenstore "Lexipic/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"createdAt": u.CreatedAt,
	}
}

func issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(int(userID)),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// Register handles POST /api/auth/register.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request"})
			return
		}

		email := strings.TrimSpace(strings.ToLower(body.Email))
		name := strings.TrimSpace(body.Name)
		if email == "" || body.Password == "" || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email, password and name are required"})
			return
		}

		var exists models.User
		if err := db.Where("email = ?", email).First(&exists).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email already registered"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "db error"})
			return
		}

		user := models.User{Email: email, Name: name}
		if err := user.SetPassword(body.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to set password"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create user"})
			return
		}

		token, err := issueToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create token"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "user": userJSON(&user), "token": token})
	}
}

// Login handles POST /api/auth/login.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request"})
			return
		}
		email := strings.TrimSpace(strings.ToLower(body.Email))
		if email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid credentials"})
			return
		}
		if !user.CheckPassword(body.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid credentials"})
			return
		}

		token, err := issueToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": userJSON(&user), "token": token})
	}
}

// Me handles GET /api/auth/me.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		var user models.User
		if err := db.First(&user, uid).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": userJSON(&user)})
	}
}

// Logout handles POST /api/auth/logout by revoking the token's jti.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		jti, _ := c.Get(middleware.ContextJTIKey)
		if s, ok := jti.(string); ok && s != "" {
			tokenstore.RevokeToken(s)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
