package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 시간표 내보내기 HTTP 처리기
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 시간표 엑셀 다운로드
// GET /api/v1/export/timetable/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportICS 시간표 iCalendar 다운로드
// GET /api/v1/export/timetable/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func setDownloadHeaders(c *gin.Context, filename string) {
	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoEnrollments):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleUpstreamError(c, err)
	}
}

