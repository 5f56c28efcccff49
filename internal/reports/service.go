// Package reports builds downloadable project-register exports for oversight
// roles.
package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/reports/export"
	"pm-ajay/scheme-portal/portal-backend/internal/scope"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export formats
const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
)

var registerColumns = []string{
	"Project ID", "Name", "Type", "State", "District", "Village",
	"Status", "Progress (%)", "Budget Allocated", "Budget Utilized",
	"Implementing Agency", "Start Date", "Expected Completion",
}

// ExportResult is a rendered report ready to be served as a download
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Service renders the project register in the caller's scope
type Service struct {
	repo projects.Repository
}

// NewService creates the reports service
func NewService(repo projects.Repository) *Service {
	return &Service{repo: repo}
}

// ProjectRegister renders the scoped project list in the requested format.
func (s *Service) ProjectRegister(ctx context.Context, claims *auth.Claims, format string) (*ExportResult, error) {
	list, err := s.repo.List(ctx, scope.ForClaims(claims))
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "PM-AJAY Project Register",
		Columns: registerColumns,
		Rows:    make([][]interface{}, 0, len(list)),
	}
	for _, p := range list {
		table.Rows = append(table.Rows, []interface{}{
			p.ID, p.Name, p.Type, p.State, p.District, p.Village,
			p.Status, p.ProgressPercentage, p.BudgetAllocated, p.BudgetUtilized,
			p.AgencyName, derefDate(p.StartDate), derefDate(p.ExpectedCompletion),
		})
	}

	var buf bytes.Buffer
	stamp := time.Now().Format("20060102")

	switch format {
	case FormatExcel:
		if err := export.NewExcelExporter("Projects").Render(table, &buf); err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("project-register-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     buf.Bytes(),
		}, nil
	case FormatPDF:
		if err := export.NewPDFExporter().Render(table, &buf); err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("project-register-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     buf.Bytes(),
		}, nil
	case FormatCSV:
		if err := export.NewCSVExporter().Render(table, &buf); err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("project-register-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     buf.Bytes(),
		}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func derefDate(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
