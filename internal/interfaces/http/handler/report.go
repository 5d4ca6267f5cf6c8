package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/ebookstore/backend/internal/application/report"
)

const pdfContentType = "application/pdf"

// ReportHandler serves the admin dashboard and the PDF report downloads
type ReportHandler struct {
	BaseHandler
	dashboard *reportapp.DashboardService
	reports   *reportapp.ReportService
}

func NewReportHandler(dashboard *reportapp.DashboardService, reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		reports:   reports,
	}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DeliveredOrders handles GET /api/v1/admin/reports/delivered-orders.
// Optional from/to query params bound the order date window.
func (h *ReportHandler) DeliveredOrders(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.dashboard.DeliveredOrders(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// DeliveredOrdersPDF handles GET /api/v1/admin/reports/delivered-orders/pdf
func (h *ReportHandler) DeliveredOrdersPDF(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pdf, err := h.reports.DeliveredOrdersPDF(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, "delivered-orders.pdf", pdf)
}

// OrderInvoicePDF handles GET /api/v1/admin/reports/orders/:id/invoice
func (h *ReportHandler) OrderInvoicePDF(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	pdf, err := h.reports.OrderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("invoice-%s.pdf", id), pdf)
}

// BookListPDF handles GET /api/v1/admin/reports/books/pdf
func (h *ReportHandler) BookListPDF(c *gin.Context) {
	pdf, err := h.reports.BookListPDF(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, "books.pdf", pdf)
}

// CustomerListPDF handles GET /api/v1/admin/reports/customers/pdf
func (h *ReportHandler) CustomerListPDF(c *gin.Context) {
	pdf, err := h.reports.CustomerListPDF(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, "customers.pdf", pdf)
}

func servePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, pdfContentType, pdf)
}

// parseDateRange reads optional from/to query params in YYYY-MM-DD form.
// The to bound is extended to the end of its day.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid 'from' date %q, expected YYYY-MM-DD", raw)
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid 'to' date %q, expected YYYY-MM-DD", raw)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
