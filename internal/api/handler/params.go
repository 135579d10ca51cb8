package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/finance-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/finance-dashboard-api/pkg/utils"
)

// latestSnapshot obtém o snapshot atual, respondendo 503 quando nenhum
// carregamento aconteceu ainda
func latestSnapshot(w http.ResponseWriter, provider loading.SnapshotProvider) (*domain.Dataset, bool) {
	ds := provider.LatestSnapshot()
	if ds == nil {
		apiErrors.WriteError(w, apiErrors.ErrNoSnapshot, "Nenhum conjunto de dados carregado ainda", nil)
		return nil, false
	}
	return ds, true
}

// resolveRange interpreta os parâmetros opcionais start/end (formato yyyy-mm).
// Na ausência deles o intervalo completo do snapshot é usado
func resolveRange(r *http.Request, ds *domain.Dataset) (domain.PeriodRange, error) {
	fullRange, ok := ds.FullRange()
	if !ok {
		return domain.PeriodRange{}, errors.New("snapshot sem registros financeiros")
	}

	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, err := utils.ParsePeriod(startStr)
		if err != nil {
			return domain.PeriodRange{}, errors.New("parâmetro start inválido, use o formato yyyy-mm")
		}
		fullRange.Start = start
	}

	if endStr := r.URL.Query().Get("end"); endStr != "" {
		end, err := utils.ParsePeriod(endStr)
		if err != nil {
			return domain.PeriodRange{}, errors.New("parâmetro end inválido, use o formato yyyy-mm")
		}
		fullRange.End = end
	}

	if fullRange.End.Before(fullRange.Start) {
		return domain.PeriodRange{}, errors.New("parâmetro end anterior a start")
	}

	return fullRange, nil
}

// writeUsecaseError traduz a taxonomia de erros dos casos de uso para o
// envelope HTTP padronizado
func writeUsecaseError(w http.ResponseWriter, err error) {
	var schemaErr *dataset.SchemaError
	var validationErr *dataset.ValidationError
	var insufficientErr *forecasting.InsufficientDataError
	var convergenceErr *forecasting.ConvergenceError

	switch {
	case errors.As(err, &schemaErr):
		apiErrors.WriteError(w, apiErrors.ErrDatasetSchema, err.Error(), nil)
	case errors.As(err, &validationErr):
		apiErrors.WriteError(w, apiErrors.ErrDatasetValidation, err.Error(), nil)
	case errors.As(err, &insufficientErr):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientData, err.Error(), nil)
	case errors.As(err, &convergenceErr):
		apiErrors.WriteError(w, apiErrors.ErrConvergence, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
