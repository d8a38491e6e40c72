package messages

import (
	"log"
	"net/http"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// Broadcast publishes an announcement every participant sees until it
// expires (mentor only)
// @Summary Broadcast a message
// @Description Announcement visible to every poller until the TTL runs out
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body BroadcastRequest true "Message"
// @Success 200 {object} map[string]string
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/messages/broadcast [post]
// @Security Bearer
func Broadcast(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	store := services.DefaultMessageStore()
	if err := store.Broadcast(c.Request.Context(), user.Username, req.Text); err != nil {
		log.Printf("Failed to store broadcast: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedSend)
		return
	}
	response.Message(c, http.StatusOK, "Broadcast sent")
}

// SendPersonal leaves a note for one participant, consumed on their next
// inbox poll (mentor only)
// @Summary Send a personal message
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body PersonalMessageRequest true "Message"
// @Success 200 {object} map[string]string
// @Failure 400,401,403,404 {object} map[string]string
// @Router /mentor/messages/personal [post]
// @Security Bearer
func SendPersonal(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req PersonalMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	store := services.DefaultMessageStore()
	if err := store.SendPersonal(c.Request.Context(), recipient.ID, user.Username, req.Text); err != nil {
		log.Printf("Failed to store personal message: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedSend)
		return
	}
	response.Message(c, http.StatusOK, "Message sent")
}

// GetInbox returns the caller's messages. The personal message is consumed
// by this read, the broadcast stays for other pollers.
// @Summary Poll the inbox
// @Tags Messages
// @Produce json
// @Success 200 {object} services.Inbox
// @Failure 401 {object} map[string]string
// @Router /messages/inbox [get]
// @Security Bearer
func GetInbox(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	store := services.DefaultMessageStore()
	inbox, err := store.FetchInbox(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Failed to fetch inbox for user %d: %v", user.ID, err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	c.JSON(http.StatusOK, inbox)
}
