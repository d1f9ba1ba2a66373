package handlers

import (
	"net/http"

	"staywise/services/account"
	"staywise/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input account.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	acc, err := h.Accounts.Register(c.Request.Context(), input)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// Credential failures come back 401 here, not 403.
		if utils.KindOf(err) == utils.KindUnauthorized {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Code: utils.KindUnauthorized, Message: "invalid email or password"})
			return
		}
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	if err := h.Accounts.Logout(c.Request.Context(), identity.Email); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ListClientsHandler is the admin pass-through over client accounts.
func (h *AuthHandler) ListClientsHandler(c *gin.Context) {
	clients, err := h.Accounts.ListClients(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// DeleteClientHandler removes a client account and revokes its token.
func (h *AuthHandler) DeleteClientHandler(c *gin.Context) {
	if err := h.Accounts.DeleteClient(c.Request.Context(), c.Param("email")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
