package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/services"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (ctl *UserController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("All fields are required"))
		return
	}

	if err := ctl.Users.Register(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Verification code sent! Check your email.",
	})
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (ctl *UserController) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Email and code are required"))
		return
	}

	user, token, err := ctl.Users.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email successfully verified! Login successful.",
		"user":    user,
		"token":   token,
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (ctl *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("All fields are required"))
		return
	}

	user, token, err := ctl.Users.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (ctl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctl.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"TotalUser": len(users),
		"message":   "All users fetched successfully",
		"users":     users,
	})
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	if err := ctl.Users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (ctl *UserController) UpdateUser(c *gin.Context) {
	var update services.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, apperr.Invalid("Invalid update fields!"))
		return
	}

	user, err := ctl.Users.UpdateUser(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

func (ctl *UserController) GetLoggedInUser(c *gin.Context) {
	user, err := ctl.Users.GetLoggedInUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User profile fetched successfully",
		"user":    user,
	})
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Invalid update fields!"))
		return
	}

	user, err := ctl.Users.UpdateProfile(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}
