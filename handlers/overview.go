package handlers

import (
	"net/http"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/burnrate"
	burnsvc "github.com/founderdash/dashboard/internal/burnrate/service"
	"github.com/founderdash/dashboard/internal/businessplan"
	docsvc "github.com/founderdash/dashboard/internal/businessplan/service"
	"github.com/founderdash/dashboard/internal/captable"
	capsvc "github.com/founderdash/dashboard/internal/captable/service"
	"github.com/founderdash/dashboard/internal/roadmap"
	roadsvc "github.com/founderdash/dashboard/internal/roadmap/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Overview is the dashboard landing view: every collection's summary.
type Overview struct {
	CapTable  captable.Summary     `json:"capTable"`
	BurnRate  burnrate.Summary     `json:"burnRate"`
	Documents businessplan.Summary `json:"documents"`
	Roadmap   roadmap.Summary      `json:"roadmap"`
}

type OverviewHandler struct {
	capTable  *capsvc.Service
	burnRate  *burnsvc.Service
	documents *docsvc.Service
	roadmap   *roadsvc.Service
}

func NewOverviewHandler(c *capsvc.Service, b *burnsvc.Service, d *docsvc.Service, r *roadsvc.Service) *OverviewHandler {
	return &OverviewHandler{capTable: c, burnRate: b, documents: d, roadmap: r}
}

func (h *OverviewHandler) Register(r gin.IRouter) {
	r.GET("/api/dashboard/overview", h.Get)
}

// Get computes the four summaries concurrently; the first failure wins.
func (h *OverviewHandler) Get(c *gin.Context) {
	owner := api.Owner(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	var out Overview
	g.Go(func() (err error) {
		out.CapTable, err = h.capTable.Summary(ctx, owner)
		return err
	})
	g.Go(func() (err error) {
		out.BurnRate, err = h.burnRate.Summary(ctx, owner)
		return err
	})
	g.Go(func() (err error) {
		out.Documents, err = h.documents.Summary(ctx, owner)
		return err
	})
	g.Go(func() (err error) {
		out.Roadmap, err = h.roadmap.Summary(ctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
