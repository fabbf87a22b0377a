package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/services"
)

type RatingController struct {
	Ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{Ratings: ratings}
}

func (ctl *RatingController) CreateRating(c *gin.Context) {
	var req services.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Product and rating are required"))
		return
	}

	rating, err := ctl.Ratings.CreateRating(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Rating added successfully",
		"rating":  rating,
	})
}

func (ctl *RatingController) GetRatingsForProduct(c *gin.Context) {
	ratings, err := ctl.Ratings.GetRatingsForProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ratings": ratings})
}

func (ctl *RatingController) GetMyRatings(c *gin.Context) {
	ratings, err := ctl.Ratings.GetRatingsByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ratings": ratings})
}

func (ctl *RatingController) GetUserRatedProducts(c *gin.Context) {
	rated, err := ctl.Ratings.GetUserRatedProducts(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"total":         len(rated),
		"ratedProducts": rated,
	})
}

func (ctl *RatingController) GetAverageRatingByShop(c *gin.Context) {
	summary, err := ctl.Ratings.AverageRatingForShop(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"shopId":             summary.ShopID,
		"owner":              summary.Owner,
		"totalRatedProducts": summary.TotalRatedProducts,
		"totalRatings":       summary.TotalRatings,
		"averageRating":      summary.AverageRating,
	})
}
