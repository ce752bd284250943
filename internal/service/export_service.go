package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/internal/repository"
)

// ── export business errors ──

var (
	ErrExportEmpty        = errors.New("no hay suscriptores para exportar")
	ErrExportGenerateFail = errors.New("no se pudo generar el archivo Excel")
)

// ExportService produces the newsletter audience as an Excel workbook:
// one sheet for registered opt-ins, one for anonymous subscribers. The
// buffer is returned for the handler to stream with download headers.
type ExportService interface {
	ExportSubscribers(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportSubscribers(ctx context.Context) (*bytes.Buffer, string, error) {
	profiles, err := s.repo.UserProfile.ListNewsletterOptIns(ctx)
	if err != nil {
		s.logger.Error("listing opt-in profiles failed", zap.Error(err))
		return nil, "", err
	}

	subs, err := s.repo.Newsletter.ListActive(ctx)
	if err != nil {
		s.logger.Error("listing active subscribers failed", zap.Error(err))
		return nil, "", err
	}

	if len(profiles) == 0 && len(subs) == 0 {
		return nil, "", ErrExportEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	const (
		registeredSheet = "Cuentas"
		anonymousSheet  = "Suscriptores"
	)

	// Sheet 1: registered opt-ins.
	f.SetSheetName("Sheet1", registeredSheet)
	headers := []interface{}{"Email", "Nombre", "Alta"}
	if err := f.SetSheetRow(registeredSheet, "A1", &headers); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i, p := range profiles {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.Email, p.DisplayName, p.CreatedAt.Format("2006-01-02")}
		if err := f.SetSheetRow(registeredSheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// Sheet 2: anonymous subscribers.
	if _, err := f.NewSheet(anonymousSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	headers = []interface{}{"Email", "Origen", "Alta"}
	if err := f.SetSheetRow(anonymousSheet, "A1", &headers); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i, sub := range subs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{sub.Email, sub.Source, sub.CreatedAt.Format("2006-01-02")}
		if err := f.SetSheetRow(anonymousSheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("suscriptores_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
