package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/services"
)

type ShopController struct {
	Shops *services.ShopService
}

func NewShopController(shops *services.ShopService) *ShopController {
	return &ShopController{Shops: shops}
}

func (ctl *ShopController) CreateShop(c *gin.Context) {
	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Shop name and location are required"))
		return
	}

	shop, err := ctl.Shops.CreateShop(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Shop created successfully!",
		"shop":    shop,
	})
}

func (ctl *ShopController) GetUserShop(c *gin.Context) {
	shop, err := ctl.Shops.GetUserShop(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "shop": shop})
}

func (ctl *ShopController) UpdateShop(c *gin.Context) {
	var update models.ShopUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, apperr.Invalid("Invalid update fields!"))
		return
	}

	shop, err := ctl.Shops.UpdateShop(c.Request.Context(), middlewares.UserID(c), update)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shop updated successfully!",
		"shop":    shop,
	})
}

func (ctl *ShopController) DeleteShop(c *gin.Context) {
	if err := ctl.Shops.DeleteShop(c.Request.Context(), middlewares.UserID(c)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shop deleted successfully!",
	})
}

func (ctl *ShopController) GetShopStatus(c *gin.Context) {
	status, err := ctl.Shops.GetShopStatus(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "shopStatus": status})
}

type shopStatusRequest struct {
	ShopStatus string `json:"shopStatus"`
}

func (ctl *ShopController) UpdateShopStatus(c *gin.Context) {
	var req shopStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Shop status must be 'on' or 'off'"))
		return
	}

	status, err := ctl.Shops.UpdateShopStatus(c.Request.Context(), middlewares.UserID(c), req.ShopStatus)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Shop status updated successfully!",
		"shopStatus": status,
	})
}

func (ctl *ShopController) GetAllShops(c *gin.Context) {
	shops, err := ctl.Shops.GetAllShops(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"TotalShop": len(shops),
		"shops":     shops,
	})
}
