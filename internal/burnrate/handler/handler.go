package handler

import (
	"net/http"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/burnrate"
	"github.com/founderdash/dashboard/internal/burnrate/service"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the burn rate API on r, behind the session middleware.
func RegisterRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/burn-rate")

	respond := func(c *gin.Context, status int, rec any) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(status, api.Mutation{Record: rec, Summary: sum})
	}

	g.GET("/expenses", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("/expenses", func(c *gin.Context) {
		var req burnrate.ExpenseInput
		if !api.Bind(c, &req) {
			return
		}
		e, err := svc.Add(c.Request.Context(), api.Owner(c), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusCreated, e)
	})

	g.GET("/expenses/:id", func(c *gin.Context) {
		e, err := svc.Get(c.Request.Context(), api.Owner(c), c.Param("id"))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	})

	g.PATCH("/expenses/:id", func(c *gin.Context) {
		var req burnrate.ExpensePatch
		if !api.Bind(c, &req) {
			return
		}
		e, err := svc.Update(c.Request.Context(), api.Owner(c), c.Param("id"), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, e)
	})

	g.DELETE("/expenses/:id", func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), api.Owner(c), c.Param("id")); err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, nil)
	})

	g.GET("/cash", func(c *gin.Context) {
		v, err := svc.Cash(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cash": v})
	})

	g.PUT("/cash", func(c *gin.Context) {
		var req struct {
			Cash *float64 `json:"cash"`
		}
		if !api.Bind(c, &req) {
			return
		}
		if req.Cash == nil {
			api.Error(c, apperr.Invalid("cash", "is required"))
			return
		}
		if err := svc.SetCash(c.Request.Context(), api.Owner(c), *req.Cash); err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"cash": *req.Cash})
	})

	g.GET("/summary", func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	})
}
