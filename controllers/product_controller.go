package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/models"
	"github.com/buttcoder420/FinalYear-backend/services"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

func (ctl *ProductController) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("All fields including at least one image are required"))
		return
	}

	product, err := ctl.Products.CreateProduct(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product added successfully!",
		"product": product,
	})
}

func (ctl *ProductController) GetMyProducts(c *gin.Context) {
	products, err := ctl.Products.GetSellerProducts(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (ctl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctl.Products.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, apperr.Invalid("Invalid update fields!"))
		return
	}

	product, err := ctl.Products.UpdateProduct(c.Request.Context(), middlewares.UserID(c), c.Param("id"), update)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully!",
		"product": product,
	})
}

func (ctl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctl.Products.DeleteProduct(c.Request.Context(), middlewares.UserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully!",
	})
}
