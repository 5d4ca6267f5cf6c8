package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appOrder "github.com/ebookstore/backend/internal/application/order"
	"github.com/ebookstore/backend/internal/domain/catalog"
	"github.com/ebookstore/backend/internal/domain/identity"
	"github.com/ebookstore/backend/internal/domain/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// DocumentRenderer converts a rendered HTML document into PDF bytes
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ReportService produces printable PDF reports from store data
type ReportService struct {
	dashboard *DashboardService
	orders    OrderReader
	books     catalog.BookRepository
	users     identity.UserRepository
	renderer  DocumentRenderer
	templates *template.Template
	now       func() time.Time
	logger    *zap.Logger
}

// OrderReader is the slice of order lookups the report service needs
type OrderReader interface {
	GetDetails(ctx context.Context, orderID uuid.UUID) (*appOrder.Summary, error)
}

// NewReportService creates a report service
func NewReportService(dashboard *DashboardService, orders OrderReader, books catalog.BookRepository, users identity.UserRepository, renderer DocumentRenderer, logger *zap.Logger) (*ReportService, error) {
	funcs := template.FuncMap{
		"formatMoney": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}

	tmpl, err := template.New("reports").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}

	return &ReportService{
		dashboard: dashboard,
		orders:    orders,
		books:     books,
		users:     users,
		renderer:  renderer,
		templates: tmpl,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// OrderInvoicePDF renders one order as a printable invoice
func (s *ReportService) OrderInvoicePDF(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	summary, err := s.orders.GetDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, "order_invoice.html", map[string]any{
		"Order": summary,
	})
}

// DeliveredOrdersPDF renders the delivered-orders report for the optional
// inclusive date range
func (s *ReportService) DeliveredOrdersPDF(ctx context.Context, from, to *time.Time) ([]byte, error) {
	orders, err := s.dashboard.DeliveredOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, "delivered_orders.html", map[string]any{
		"Orders":      orders,
		"From":        deref(from),
		"To":          deref(to),
		"GeneratedAt": s.now(),
	})
}

// BookListPDF renders the active catalog as a printable list
func (s *ReportService) BookListPDF(ctx context.Context) ([]byte, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = allRows
	books, err := s.books.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, "book_list.html", map[string]any{
		"Books":       books,
		"GeneratedAt": s.now(),
	})
}

// CustomerListPDF renders the active customer roster
func (s *ReportService) CustomerListPDF(ctx context.Context) ([]byte, error) {
	customers, err := s.users.FindActiveCustomers(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]customerRow, 0, len(customers))
	for i := range customers {
		u := &customers[i]
		rows = append(rows, customerRow{
			Name:             u.FullName(),
			Email:            u.Email,
			PhoneNumber:      u.PhoneNumber,
			RegistrationDate: u.RegistrationDate,
		})
	}

	return s.render(ctx, "customer_list.html", map[string]any{
		"Customers":   rows,
		"GeneratedAt": s.now(),
	})
}

const allRows = 10000

type customerRow struct {
	Name             string
	Email            string
	PhoneNumber      string
	RegistrationDate time.Time
}

func (s *ReportService) render(ctx context.Context, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute report template %s: %w", name, err)
	}

	pdf, err := s.renderer.RenderPDF(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	s.logger.Info("report rendered",
		zap.String("template", name),
		zap.Int("bytes", len(pdf)))
	return pdf, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
