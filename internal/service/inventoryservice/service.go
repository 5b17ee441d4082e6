package inventoryservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stockadmin/internal/backend"
	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
)

// Executor define o contrato que o Serviço de Inventário espera da camada
// de transporte (o executor de requisições autenticadas).
type Executor interface {
	Do(ctx context.Context, method, rawURL string, query url.Values, form url.Values, jsonBody interface{}) (json.RawMessage, error)
}

// statusAll é o valor de filtro de status que significa "sem filtro".
const statusAll = "All"

// Valores padrão dos campos de formulário quando ausentes.
const (
	defaultUnit    = "piece"
	defaultMeasure = "unit"
)

// Service é o cliente de recurso do inventário: compõe o executor e o
// normalizador em operações de listagem/leitura/escrita contra o serviço
// de inventário remoto.
type Service struct {
	exec    Executor
	baseURL string
	log     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(exec Executor, baseURL string, log logger.Logger) *Service {
	return &Service{exec: exec, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// List busca uma página de itens de inventário.
// Parâmetros iguais ao padrão são omitidos da query inteiramente: o
// servidor trata ausência como padrão, não como erro.
func (s *Service) List(ctx context.Context, filter domain.InventoryFilter) (domain.InventoryList, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = domain.ItemsPerPage
	}

	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Status != "" && filter.Status != statusAll {
		query.Set("status", filter.Status)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit != domain.ItemsPerPage {
		query.Set("limit", strconv.Itoa(limit))
	}

	raw, err := s.exec.Do(ctx, http.MethodGet, s.baseURL+"/inventory/list", query, nil, nil)
	if err != nil {
		s.log.Error("Falha ao listar itens de inventário.", err)
		return domain.InventoryList{}, err
	}

	result, err := backend.NormalizeList(raw, "items", page, limit, domain.DecodeItem)
	if err != nil {
		s.log.Error("Falha ao normalizar a listagem de inventário.", err)
		return domain.InventoryList{}, err
	}

	s.log.Debug("Listagem de inventário concluída.", map[string]interface{}{
		"count": len(result.Items),
		"page":  result.Pagination.CurrentPage,
	})
	return domain.InventoryList{Items: result.Items, Pagination: result.Pagination}, nil
}

// Get busca um único item de inventário pelo ID.
func (s *Service) Get(ctx context.Context, id int) (domain.InventoryItem, error) {
	if id <= 0 {
		return domain.InventoryItem{}, apperror.NewValidationError("O ID do item deve ser um inteiro positivo.")
	}

	raw, err := s.exec.Do(ctx, http.MethodGet, s.itemURL(id), nil, nil, nil)
	if err != nil {
		s.log.Error("Falha ao buscar item de inventário.", err)
		return domain.InventoryItem{}, err
	}

	return s.decodeEntity(raw)
}

// Create valida localmente e cria um novo item. Falha de validação NUNCA
// emite requisição. O backend atribui o ID e devolve o registro criado.
func (s *Service) Create(ctx context.Context, draft domain.InventoryDraft) (domain.InventoryItem, error) {
	name := strings.TrimSpace(draft.Name)
	category := strings.TrimSpace(draft.Category)
	unit := strings.TrimSpace(draft.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	measure := strings.TrimSpace(draft.Measure)
	if measure == "" {
		measure = defaultMeasure
	}
	// O backend só conhece Location; supplier serve de fallback
	location := strings.TrimSpace(draft.Location)
	if location == "" {
		location = strings.TrimSpace(draft.Supplier)
	}

	if err := validateItemFields(name, category, draft.Quantity); err != nil {
		s.log.Warn("Validação de criação de item falhou.", map[string]interface{}{"error": err.Error()})
		return domain.InventoryItem{}, err
	}

	form := buildItemForm(name, unit, draft.Quantity, measure, category, location)

	raw, err := s.exec.Do(ctx, http.MethodPost, s.baseURL+"/inventory/create", nil, form, nil)
	if err != nil {
		s.log.Error("Falha ao criar item de inventário.", err)
		return domain.InventoryItem{}, err
	}

	created, err := s.decodeEntity(raw)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.log.Info("Item de inventário criado.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// Update busca o item atual, mescla os campos parciais sobre ele e reenvia
// o REGISTRO COMPLETO via PUT. O endpoint de atualização do backend exige
// o conjunto completo de campos em todo PUT: não existe semântica de
// atualização parcial do lado do servidor, então nunca enviamos um patch
// esparso mesmo quando o chamador forneceu campos parciais.
func (s *Service) Update(ctx context.Context, id int, patch domain.InventoryPatch) (domain.InventoryItem, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	// Campo parcial vence quando presente e não-vazio após trim;
	// caso contrário o valor atual é retido.
	name := mergeField(patch.Name, current.Name)
	category := mergeField(patch.Category, current.Category)
	unit := mergeField(patch.Unit, current.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	measure := mergeField(patch.Measure, current.Measure)
	if measure == "" {
		measure = defaultMeasure
	}
	location := mergeField(patch.Location, current.Location)
	quantity := current.Quantity
	if patch.Quantity != nil {
		quantity = *patch.Quantity
	}

	if err := validateItemFields(name, category, quantity); err != nil {
		s.log.Warn("Validação de atualização de item falhou.", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return domain.InventoryItem{}, err
	}

	form := buildItemForm(name, unit, quantity, measure, category, location)

	raw, err := s.exec.Do(ctx, http.MethodPut, s.itemURL(id), nil, form, nil)
	if err != nil {
		s.log.Error("Falha ao atualizar item de inventário.", err)
		return domain.InventoryItem{}, err
	}

	updated, err := s.decodeEntity(raw)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.log.Info("Item de inventário atualizado.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// Delete remove um item. Sucesso é qualquer 2xx; nenhum corpo é esperado.
func (s *Service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID do item deve ser um inteiro positivo.")
	}

	if _, err := s.exec.Do(ctx, http.MethodDelete, s.itemURL(id), nil, nil, nil); err != nil {
		s.log.Error("Falha ao deletar item de inventário.", err)
		return err
	}

	s.log.Info("Item de inventário deletado.", map[string]interface{}{"id": id})
	return nil
}

// --- Auxiliares ---

func (s *Service) itemURL(id int) string {
	return s.baseURL + "/inventory/" + strconv.Itoa(id)
}

// decodeEntity normaliza uma resposta de entidade única e decodifica o item.
func (s *Service) decodeEntity(raw json.RawMessage) (domain.InventoryItem, error) {
	data, err := backend.NormalizeItem(raw)
	if err != nil {
		s.log.Error("Resposta de entidade única em formato inesperado.", err)
		return domain.InventoryItem{}, err
	}

	item, err := domain.DecodeItem(data)
	if err != nil {
		return domain.InventoryItem{}, apperror.NewInvalidFormatError(
			"a entidade retornada pelo backend não pôde ser decodificada: " + err.Error())
	}
	return item, nil
}

// validateItemFields aplica as validações locais obrigatórias antes de
// qualquer operação de escrita.
func validateItemFields(name, category string, quantity int) error {
	if name == "" {
		return apperror.NewValidationError("O campo nome é obrigatório e não pode ser vazio.")
	}
	if category == "" {
		return apperror.NewValidationError("O campo categoria é obrigatório e não pode ser vazio.")
	}
	if quantity < 0 {
		return apperror.NewValidationError("A quantidade deve ser um número não-negativo.")
	}
	return nil
}

// buildItemForm monta o payload de formulário com o conjunto fixo de campos
// que o backend exige (ele lê o corpo via PostForm).
func buildItemForm(name, unit string, quantity int, measure, category, location string) url.Values {
	form := url.Values{}
	form.Set("Name", name)
	form.Set("Unit", unit)
	form.Set("Quantity", strconv.Itoa(quantity))
	form.Set("Measure", measure)
	form.Set("Category", category)
	form.Set("Location", location)
	return form
}

// mergeField resolve um campo string na mesclagem de atualização.
func mergeField(patch *string, current string) string {
	if patch != nil {
		if value := strings.TrimSpace(*patch); value != "" {
			return value
		}
	}
	return strings.TrimSpace(current)
}
