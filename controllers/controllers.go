// Package controllers contains the gin handlers. They bind input, call the
// service and translate the error taxonomy; every response is
// {success, message, ...}.
package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
)

func fail(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"success": false, "message": apperr.MessageOf(err)})
}

func ok2xx(c *gin.Context) bool {
	return c.Writer.Status() >= 200 && c.Writer.Status() < 300
}
