package api

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-booking-console/internal/console"
	"room-booking-console/internal/export"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

// ListAssets handles GET /console/:tenant/assets.
func (h *Handler) ListAssets(c *gin.Context) {
	filters := service.FromValues(c.Request.URL.Query(), service.AssetFilterKeys)
	st := h.console(c).Assets.SetFilters(c.Request.Context(), console.AssetState{}, filters)
	if st.Error != "" {
		listFailed(c, st.Error, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetAsset handles GET /console/:tenant/assets/:id.
func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	st, err := h.console(c).Assets.OpenByID(c.Request.Context(), console.AssetState{}, id, modeQuery(c))
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetAssetAllocations handles GET /console/:tenant/assets/:id/allocations.
func (h *Handler) GetAssetAllocations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	st, err := h.console(c).Assets.History(c.Request.Context(), console.AssetState{}, model.Asset{ID: id})
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// CreateAsset handles POST /console/:tenant/assets.
func (h *Handler) CreateAsset(c *gin.Context) {
	var form console.AssetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	v := h.console(c).Assets
	st := v.OpenCreate(console.AssetState{})
	st.Form = form
	st, err := v.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateAsset handles PUT /console/:tenant/assets/:id.
func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var form console.AssetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	st := console.AssetState{
		Selected: &model.Asset{ID: id},
		Modal:    console.Modal{Open: true, Mode: console.ModeEdit},
		Form:     form,
	}
	st, err := h.console(c).Assets.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteAsset handles DELETE /console/:tenant/assets/:id by asking for confirmation.
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.park(c, console.ResourceAsset, id, 0)
}

// ExportAssets handles GET /console/:tenant/exports/assets.
func (h *Handler) ExportAssets(c *gin.Context) {
	filters := service.FromValues(c.Request.URL.Query(), service.AssetFilterKeys)
	st := h.console(c).Assets.SetFilters(c.Request.Context(), console.AssetState{}, filters)
	if st.Error != "" {
		listFailed(c, st.Error, nil)
		return
	}

	var buf bytes.Buffer
	if err := export.Assets(&buf, st.Assets); err != nil {
		fail(c, err, nil)
		return
	}
	name := fmt.Sprintf("tai_san_%s_%s.xlsx", c.Param("tenant"), time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
