package handler

import (
	"net/http"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/captable"
	"github.com/founderdash/dashboard/internal/captable/service"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the cap table API on r, which must sit behind the
// session middleware.
func RegisterRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/cap-table")

	respond := func(c *gin.Context, status int, rec any) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(status, api.Mutation{Record: rec, Summary: sum})
	}

	g.GET("/stakeholders", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("/stakeholders", func(c *gin.Context) {
		var req captable.StakeholderInput
		if !api.Bind(c, &req) {
			return
		}
		h, err := svc.Add(c.Request.Context(), api.Owner(c), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusCreated, h)
	})

	g.GET("/stakeholders/:id", func(c *gin.Context) {
		h, err := svc.Get(c.Request.Context(), api.Owner(c), c.Param("id"))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, h)
	})

	g.PATCH("/stakeholders/:id", func(c *gin.Context) {
		var req captable.StakeholderPatch
		if !api.Bind(c, &req) {
			return
		}
		h, err := svc.Update(c.Request.Context(), api.Owner(c), c.Param("id"), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, h)
	})

	g.DELETE("/stakeholders/:id", func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), api.Owner(c), c.Param("id")); err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, nil)
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
