package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	List(ctx context.Context, filter domain.InventoryFilter) (domain.InventoryList, error)
	Get(ctx context.Context, id int) (domain.InventoryItem, error)
	Create(ctx context.Context, draft domain.InventoryDraft) (domain.InventoryItem, error)
	Update(ctx context.Context, id int, patch domain.InventoryPatch) (domain.InventoryItem, error)
	Delete(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler do inventário.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		// Erros de cliente (4xx) são logados como debug
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
			map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// itemID extrai e valida o ID numérico da rota.
func itemID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("O ID do item deve ser um inteiro positivo.")
	}
	return id, nil
}

// ListHandler lida com GET /v1/inventory.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := domain.InventoryFilter{
		Search: query.Get("search"),
		Status: query.Get("status"),
		Page:   page,
		Limit:  limit,
	}

	list, err := h.Service.List(r.Context(), filter)
	h.handleServiceResponse(w, r, list, err, http.StatusOK)
}

// GetHandler lida com GET /v1/inventory/{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	item, err := h.Service.Get(r.Context(), id)
	h.handleServiceResponse(w, r, item, err, http.StatusOK)
}

// CreateHandler lida com POST /v1/inventory.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.InventoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	created, err := h.Service.Create(r.Context(), draft)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// UpdateHandler lida com PUT /v1/inventory/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var patch domain.InventoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil,
			apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, patch)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteHandler lida com DELETE /v1/inventory/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	err = h.Service.Delete(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
