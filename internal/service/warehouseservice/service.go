package warehouseservice

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

// Executor define o contrato que o Serviço de Armazéns espera da camada de
// transporte.
type Executor interface {
	Do(ctx context.Context, method, rawURL string, query url.Values, form url.Values, jsonBody interface{}) (json.RawMessage, error)
}

// Service é o cliente de recurso dos armazéns. É a variação menor do
// cliente de inventário: a coleção chega sob a chave "warehouses", não há
// filtro de status e o serviço remoto não expõe operações de escrita além
// da remoção.
type Service struct {
	exec    Executor
	baseURL string
	log     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(exec Executor, baseURL string, log logger.Logger) *Service {
	return &Service{exec: exec, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// List busca uma página de armazéns. Parâmetros iguais ao padrão são
// omitidos da query; o servidor trata ausência como padrão.
func (s *Service) List(ctx context.Context, filter domain.WarehouseFilter) (domain.WarehouseList, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = domain.WarehousesPerPage
	}

	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit != domain.WarehousesPerPage {
		query.Set("limit", strconv.Itoa(limit))
	}

	raw, err := s.exec.Do(ctx, http.MethodGet, s.baseURL+"/warehouse/list", query, nil, nil)
	if err != nil {
		s.log.Error("Falha ao listar armazéns.", err)
		return domain.WarehouseList{}, err
	}

	result, err := backend.NormalizeList(raw, "warehouses", page, limit, domain.DecodeWarehouse)
	if err != nil {
		s.log.Error("Falha ao normalizar a listagem de armazéns.", err)
		return domain.WarehouseList{}, err
	}

	s.log.Debug("Listagem de armazéns concluída.", map[string]interface{}{
		"count": len(result.Items),
		"page":  result.Pagination.CurrentPage,
	})
	return domain.WarehouseList{Warehouses: result.Items, Pagination: result.Pagination}, nil
}

// Get busca um único armazém pelo ID.
func (s *Service) Get(ctx context.Context, id int) (domain.Warehouse, error) {
	if id <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}

	raw, err := s.exec.Do(ctx, http.MethodGet, s.warehouseURL(id), nil, nil, nil)
	if err != nil {
		s.log.Error("Falha ao buscar armazém.", err)
		return domain.Warehouse{}, err
	}

	data, err := backend.NormalizeItem(raw)
	if err != nil {
		s.log.Error("Resposta de entidade única em formato inesperado.", err)
		return domain.Warehouse{}, err
	}

	warehouse, err := domain.DecodeWarehouse(data)
	if err != nil {
		return domain.Warehouse{}, apperror.NewInvalidFormatError(
			"o armazém retornado pelo backend não pôde ser decodificado: " + err.Error())
	}
	return warehouse, nil
}

// Delete remove um armazém. Sucesso é qualquer 2xx; nenhum corpo é esperado.
func (s *Service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}

	if _, err := s.exec.Do(ctx, http.MethodDelete, s.warehouseURL(id), nil, nil, nil); err != nil {
		s.log.Error("Falha ao deletar armazém.", err)
		return err
	}

	s.log.Info("Armazém deletado.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) warehouseURL(id int) string {
	return s.baseURL + "/warehouse/" + strconv.Itoa(id)
}
