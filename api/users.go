package api

import (
	"strconv"

	"github.com/Domenick1991/skyflow/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/admin/register", h.registerAdmin)
	router.POST("/login", h.login)
	router.PUT("/:id", h.update)
	router.GET("/me", h.me)
}

func (h *UserHandler) register(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *UserHandler) registerAdmin(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.RegisterAdmin(c.Request.Context(), req, callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *UserHandler) login(c *gin.Context) {
	var req users.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req, callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *UserHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid id")
		return
	}
	var req users.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}

func (h *UserHandler) me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(resp.StatusCode, resp)
}
