package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	prospectapp "github.com/coldpitch/backend/internal/application/prospect"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// maxImportSize caps uploaded CSV files at 10 MiB
const maxImportSize = 10 << 20

// ProspectHandler handles prospect funnel endpoints
type ProspectHandler struct {
	BaseHandler
	service      *prospectapp.ProspectService
	importExport *prospectapp.ImportExportService
}

// NewProspectHandler creates a new prospect handler
func NewProspectHandler(service *prospectapp.ProspectService, importExport *prospectapp.ImportExportService) *ProspectHandler {
	return &ProspectHandler{
		service:      service,
		importExport: importExport,
	}
}

// Create adds a prospect to the funnel
func (h *ProspectHandler) Create(c *gin.Context) {
	var req prospectapp.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateProspect(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single prospect
func (h *ProspectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid prospect ID")
		return
	}

	resp, err := h.service.GetProspect(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a prospect's editable fields
func (h *ProspectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid prospect ID")
		return
	}

	var req prospectapp.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateProspect(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeStatus moves a prospect through the funnel
func (h *ProspectHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid prospect ID")
		return
	}

	var req prospectapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.ChangeStatus(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a prospect
func (h *ProspectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid prospect ID")
		return
	}

	if err := h.service.DeleteProspect(c.Request.Context(), id, actorID(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns a filtered, paginated page of prospects
func (h *ProspectHandler) List(c *gin.Context) {
	var filter prospectapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.ListProspects(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// FunnelCounts returns per-status prospect counts
func (h *ProspectHandler) FunnelCounts(c *gin.Context) {
	counts, err := h.service.FunnelCounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

// Import ingests prospects from an uploaded CSV file
func (h *ProspectHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "CSV file is required (multipart field 'file')")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	if len(data) == 0 {
		h.BadRequest(c, "Uploaded file is empty")
		return
	}

	result, err := h.importExport.ImportCSV(c.Request.Context(), data, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Export streams the filtered prospect list as a CSV download
func (h *ProspectHandler) Export(c *gin.Context) {
	var filter prospectapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	data, filename, err := h.importExport.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
