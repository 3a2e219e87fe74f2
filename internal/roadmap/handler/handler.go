package handler

import (
	"net/http"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/roadmap"
	"github.com/founderdash/dashboard/internal/roadmap/service"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the roadmap API on r, behind the session middleware.
func RegisterRoutes(r gin.IRouter, svc *service.Service) {
	g := r.Group("/api/roadmap")

	respond := func(c *gin.Context, status int, rec any) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(status, api.Mutation{Record: rec, Summary: sum})
	}

	transition := func(op func(c *gin.Context, owner, id string) (roadmap.Milestone, error)) gin.HandlerFunc {
		return func(c *gin.Context) {
			m, err := op(c, api.Owner(c), c.Param("id"))
			if err != nil {
				api.Error(c, err)
				return
			}
			respond(c, http.StatusOK, m)
		}
	}

	g.GET("/milestones", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("/milestones", func(c *gin.Context) {
		var req roadmap.MilestoneInput
		if !api.Bind(c, &req) {
			return
		}
		m, err := svc.Add(c.Request.Context(), api.Owner(c), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusCreated, m)
	})

	g.GET("/milestones/:id", func(c *gin.Context) {
		m, err := svc.Get(c.Request.Context(), api.Owner(c), c.Param("id"))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	})

	g.PATCH("/milestones/:id", func(c *gin.Context) {
		var req roadmap.MilestonePatch
		if !api.Bind(c, &req) {
			return
		}
		m, err := svc.Update(c.Request.Context(), api.Owner(c), c.Param("id"), req)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, m)
	})

	g.DELETE("/milestones/:id", func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), api.Owner(c), c.Param("id")); err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, nil)
	})

	g.PUT("/milestones/:id/progress", func(c *gin.Context) {
		var req struct {
			Progress *int `json:"progress"`
		}
		if !api.Bind(c, &req) {
			return
		}
		if req.Progress == nil {
			api.Error(c, apperr.Invalid("progress", "is required"))
			return
		}
		m, err := svc.SetProgress(c.Request.Context(), api.Owner(c), c.Param("id"), *req.Progress)
		if err != nil {
			api.Error(c, err)
			return
		}
		respond(c, http.StatusOK, m)
	})

	g.POST("/milestones/:id/start", transition(func(c *gin.Context, owner, id string) (roadmap.Milestone, error) {
		return svc.Start(c.Request.Context(), owner, id)
	}))
	g.POST("/milestones/:id/hold", transition(func(c *gin.Context, owner, id string) (roadmap.Milestone, error) {
		return svc.Hold(c.Request.Context(), owner, id)
	}))
	g.POST("/milestones/:id/resume", transition(func(c *gin.Context, owner, id string) (roadmap.Milestone, error) {
		return svc.Resume(c.Request.Context(), owner, id)
	}))

	g.GET("/summary", func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), api.Owner(c))
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	})
}
