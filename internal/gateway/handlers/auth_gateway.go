package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"baibebalo-system/internal/utils"
)

const adminRole = "admin"

// AuthHTTPHandler logs in the single back-office administrator configured through
// the environment.
type AuthHTTPHandler struct {
	jwt          *utils.JWTManager
	username     string
	passwordHash []byte
}

func NewAuthHTTPHandler(jwt *utils.JWTManager, username, passwordHash string) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		jwt:          jwt,
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format"))
		return
	}

	if len(h.passwordHash) == 0 || req.Username != h.username ||
		bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("Invalid username or password"))
		return
	}

	token, exp, err := h.jwt.GenerateToken(1, h.username, adminRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", gin.H{
		"token":      token,
		"expires_at": exp,
	}))
}
