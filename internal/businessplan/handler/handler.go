package handler

import (
	"net/http"
	"strings"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/businessplan"
	"github.com/founderdash/dashboard/internal/businessplan/service"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the document library API on r, behind the session
// middleware.
func RegisterRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/documents")

	respond := func(c *gin.Context, status int, rec any) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(status, api.Mutation{Record: rec, Summary: sum})
	}

	// action wraps the single-record operations that answer with the record
	// and the refreshed summary.
	action := func(status int, op func(c *gin.Context) (businessplan.Document, error)) gin.HandlerFunc {
		return func(c *gin.Context) {
			doc, err := op(c)
			if err != nil {
				api.Error(c, err)
				return
			}
			respond(c, status, doc)
		}
	}

	g.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		var req businessplan.DocumentInput
		if !api.Bind(c, &req) {
			return
		}
		if strings.TrimSpace(req.Author) == "" {
			if id, ok := api.CurrentIdentity(c); ok {
				req.Author = id.Name
			}
		}
		doc, err := svc.Add(c.Request.Context(), api.Owner(c), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusCreated, doc)
	})

	g.GET("/summary", func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	})

	g.GET("/:id", func(c *gin.Context) {
		doc, err := svc.Get(c.Request.Context(), api.Owner(c), c.Param("id"))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	g.PATCH("/:id", func(c *gin.Context) {
		var req businessplan.DocumentPatch
		if !api.Bind(c, &req) {
			return
		}
		doc, err := svc.Update(c.Request.Context(), api.Owner(c), c.Param("id"), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, doc)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), api.Owner(c), c.Param("id")); err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, nil)
	})

	g.POST("/:id/duplicate", action(http.StatusCreated, func(c *gin.Context) (businessplan.Document, error) {
		return svc.Duplicate(c.Request.Context(), api.Owner(c), c.Param("id"))
	}))

	g.POST("/:id/publish", action(http.StatusOK, func(c *gin.Context) (businessplan.Document, error) {
		return svc.Publish(c.Request.Context(), api.Owner(c), c.Param("id"))
	}))

	g.POST("/:id/export", func(c *gin.Context) {
		exp, err := svc.Export(c.Request.Context(), api.Owner(c), c.Param("id"))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, exp)
	})
}
