package handler

import (
	contactapp "github.com/freshmart/backend/internal/application/contact"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles contact message endpoints
type MessageHandler struct {
	BaseHandler
	messageService *contactapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *contactapp.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// @Summary      Send a contact message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body contactapp.SendMessageRequest true "Message"
// @Success      201 {object} dto.Response{data=contactapp.MessageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req contactapp.SendMessageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// List godoc
// @Summary      List contact messages
// @Tags         messages
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contactapp.MessageResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messageService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, messages, len(messages))
}

// Get godoc
// @Summary      Get a contact message
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} dto.Response{data=contactapp.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "Message")
	if !ok {
		return
	}

	msg, err := h.messageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} dto.Response{data=contactapp.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := h.ParseID(c, "Message")
	if !ok {
		return
	}

	msg, err := h.messageService.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// Delete godoc
// @Summary      Delete a contact message
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "Message")
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Removed(c, "Message")
}
