package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do StockAdmin.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "API_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro de Cliente (antes de qualquer chamada de rede) ---

// ValidationError representa falhas de validação de dados de entrada.
// Uma operação que falha em validação NUNCA chega a emitir uma requisição.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthenticatedError indica que nenhuma credencial estava disponível
// antes de uma chamada que a exige. A chamada nunca é emitida.
type UnauthenticatedError struct {
	Msg string
}

func (e *UnauthenticatedError) Error() string    { return fmt.Sprintf("Não autenticado: %s", e.Msg) }
func (e *UnauthenticatedError) Category() string { return "UNAUTHENTICATED" }
func (e *UnauthenticatedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthenticatedError) Unwrap() error    { return nil }

// NewUnauthenticatedError cria um novo erro de credencial ausente.
func NewUnauthenticatedError(msg string) AppError {
	return &UnauthenticatedError{Msg: msg}
}

// --- Tipos de Erro da API Remota ---

// APIError representa uma resposta não-2xx do backend OU uma falha de
// transporte. A distinção é preservada pelo StatusCode: 0 significa que a
// requisição nunca chegou ao servidor (DNS, conexão recusada, timeout);
// qualquer outro valor é o status HTTP devolvido pelo backend.
type APIError struct {
	StatusCode int
	Msg        string
	Body       json.RawMessage // corpo da resposta, se houve e era parseável
	Err        error           // erro de transporte subjacente, se houver
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("Erro de rede: %s", e.Msg)
	}
	return fmt.Sprintf("Erro da API (HTTP %d): %s", e.StatusCode, e.Msg)
}

func (e *APIError) Category() string {
	if e.StatusCode == 0 {
		return "NETWORK_ERROR"
	}
	return "API_ERROR"
}

// HTTPStatus traduz o erro para a superfície do painel: o status do backend
// é repassado; falha de transporte vira 503 (serviço indisponível).
func (e *APIError) HTTPStatus() int {
	if e.StatusCode == 0 {
		return http.StatusServiceUnavailable // 503
	}
	return e.StatusCode
}

func (e *APIError) Unwrap() error { return e.Err }

// NewAPIError cria um erro a partir de uma resposta não-2xx do backend.
func NewAPIError(statusCode int, msg string, body json.RawMessage) AppError {
	return &APIError{StatusCode: statusCode, Msg: msg, Body: body}
}

// NewNetworkError cria um erro de transporte (StatusCode = 0).
func NewNetworkError(err error) AppError {
	msg := "Falha de conexão com o serviço remoto."
	if err != nil {
		msg = err.Error()
	}
	return &APIError{StatusCode: 0, Msg: msg, Err: err}
}

// InvalidFormatError indica que a resposta do backend não tinha o envelope
// esperado (caso de entidade única sem a chave 'data', por exemplo).
type InvalidFormatError struct {
	Msg string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("Formato de resposta inválido: %s", e.Msg)
}
func (e *InvalidFormatError) Category() string { return "INVALID_RESPONSE_FORMAT" }
func (e *InvalidFormatError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *InvalidFormatError) Unwrap() error    { return nil }

// NewInvalidFormatError cria um novo erro de formato de resposta.
func NewInvalidFormatError(msg string) AppError {
	return &InvalidFormatError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no próprio painel.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		// O erro é tipado (ValidationError, APIError, etc.)
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
