package handler

import (
	identityapp "github.com/freshmart/backend/internal/application/identity"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary      Register a user
// @Description  Create a user account. The role defaults to customer.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterUserRequest true "Registration request"
// @Success      201 {object} dto.Response{data=identityapp.AuthResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req identityapp.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login godoc
// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identityapp.AuthResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the presented token until it expires
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Logged out"})
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.ProfileResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Partial update; empty fields keep their value. Returns a fresh token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateProfileRequest true "Profile changes"
// @Success      200 {object} dto.Response{data=identityapp.ProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req identityapp.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identityapp.UserResponse,meta=dto.Meta}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, users, len(users))
}

// Delete godoc
// @Summary      Delete a user
// @Description  Admin accounts cannot be deleted
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=dto.MessageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "User")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Removed(c, "User")
}
