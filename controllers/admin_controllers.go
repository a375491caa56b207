package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenbasket/produce-orders/config"
	"github.com/greenbasket/produce-orders/utils"
)

type AdminController struct {
	Cfg *config.Config
}

func NewAdminController(cfg *config.Config) *AdminController {
	return &AdminController{Cfg: cfg}
}

// Login checks the shared admin secret and hands back the session credential.
// The credential is the password itself, static for the process lifetime.
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(ac.Cfg.AdminPasswordHash, []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	utils.InfoLogger.Printf("Admin login from %s", c.ClientIP())

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": ac.Cfg.AdminPassword,
	})
}

// GetConfig exposes the public storefront settings.
func (ac *AdminController) GetConfig(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Config", gin.H{
		"whatsappPhone": ac.Cfg.WhatsAppPhone,
		"deliveryFee":   ac.Cfg.DeliveryFee,
	})
}
