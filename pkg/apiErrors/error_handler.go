package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de validação de requisição (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de carga dos dados (LOAD)
	ErrDatasetSchema     = "LOAD_001" // Esquema inválido nos arquivos de entrada
	ErrDatasetValidation = "LOAD_002" // Valores inválidos nos arquivos de entrada
	ErrNoSnapshot        = "LOAD_003" // Nenhum snapshot carregado ainda

	// Erros de previsão (FCT)
	ErrInsufficientData = "FCT_001" // Histórico insuficiente para o período sazonal
	ErrConvergence      = "FCT_002" // Ajuste do modelo não convergiu

	// Erros do servidor (SRV)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrDatasetSchema:       http.StatusUnprocessableEntity,
	ErrDatasetValidation:   http.StatusUnprocessableEntity,
	ErrNoSnapshot:          http.StatusServiceUnavailable,
	ErrInsufficientData:    http.StatusUnprocessableEntity,
	ErrConvergence:         http.StatusUnprocessableEntity,
	ErrInternalServer:      http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
