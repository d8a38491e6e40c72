package auth

import (
	"net/http"
	"time"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/utils"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Login authenticates a user and returns a session token
// @Summary Log in
// @Description Authenticate with username and password, returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var user models.User
	if err := database.DB.Preload("Groups").Where("username = ?", req.Username).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedGenerateToken)
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_connected", &now)

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// RegisterUser creates a participant account
// @Summary Register
// @Description Create a new participant account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrUsernameTaken)
		return
	} else if err != gorm.ErrRecordNotFound {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateUser)
		return
	}
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrEmailTaken)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedToHash)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateUser)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedGenerateToken)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// CheckAuth returns the authenticated user for a valid token
// @Summary Check session
// @Description Validate the bearer token and return the current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout ends the session. Tokens are stateless so this is a client-side
// discard, the endpoint exists for symmetry.
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Logged out")
}
