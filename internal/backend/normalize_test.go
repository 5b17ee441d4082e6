package backend_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockadmin/internal/backend"
	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
)

// Os quatro formatos de envelope reconhecidos devem colapsar no mesmo
// resultado canônico {itens, paginação}.

func TestNormalizeList_Shape_ItemsWithPagination(t *testing.T) {
	envelope := json.RawMessage(`{
		"items": [{"ID":1,"Name":"X","Quantity":5,"Category":"Geral","Location":"CD-01","CreatedAt":"2024-11-07T10:00:00Z"}],
		"pagination": {"currentPage":2,"totalPages":3,"totalItems":11,"itemsPerPage":5}
	}`)

	result, err := backend.NormalizeList(envelope, "items", 2, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Items[0].ID)
	assert.Equal(t, domain.StatusOutOfStock, result.Items[0].Status)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Equal(t, 11, result.Pagination.TotalItems)
	assert.Equal(t, 6, result.Pagination.StartIndex)
	assert.Equal(t, 10, result.Pagination.EndIndex)
}

func TestNormalizeList_Shape_ItemsWithoutPagination(t *testing.T) {
	envelope := json.RawMessage(`{"items": [{"id":1,"name":"A","quantity":3}, {"id":2,"name":"B","quantity":60}]}`)

	result, err := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	// Sem metadados do servidor: paginação sintetizada em página única
	assert.Equal(t, 1, result.Pagination.TotalPages)
	assert.Equal(t, 2, result.Pagination.TotalItems)
	assert.Equal(t, 1, result.Pagination.StartIndex)
	assert.Equal(t, 2, result.Pagination.EndIndex)
}

func TestNormalizeList_Shape_BareArray(t *testing.T) {
	envelope := json.RawMessage(`[{"ID":1,"Name":"X","Quantity":5}]`)

	result, err := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "X", result.Items[0].Name)
	assert.Equal(t, 5, result.Items[0].Quantity)
	assert.Equal(t, domain.StatusOutOfStock, result.Items[0].Status)
	assert.Equal(t, domain.Pagination{
		CurrentPage:  1,
		TotalPages:   1,
		TotalItems:   1,
		ItemsPerPage: 5,
		StartIndex:   1,
		EndIndex:     1,
	}, result.Pagination)
}

func TestNormalizeList_Shape_DataArray(t *testing.T) {
	envelope := json.RawMessage(`{"data": [{"ID":4,"Name":"Y","Quantity":20}]}`)

	result, err := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 4, result.Items[0].ID)
	assert.Equal(t, domain.StatusLowStock, result.Items[0].Status)
	assert.Equal(t, 1, result.Pagination.TotalItems)
}

func TestNormalizeList_Shape_DataWithItemsAndPagination(t *testing.T) {
	envelope := json.RawMessage(`{
		"data": {
			"items": [{"ID":9,"Name":"Z","Quantity":55}],
			"pagination": {"currentPage":1,"totalPages":2,"totalItems":6,"itemsPerPage":5}
		}
	}`)

	result, err := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, domain.StatusInStock, result.Items[0].Status)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.Equal(t, 6, result.Pagination.TotalItems)
	assert.Equal(t, 1, result.Pagination.StartIndex)
	assert.Equal(t, 5, result.Pagination.EndIndex)
}

func TestNormalizeList_PrecedenceIsStable(t *testing.T) {
	// Payload ambíguo: satisfaz a regra 1 (items) E a regra 3 (data).
	// A regra 1 deve vencer; 'data' é ignorado por completo.
	envelope := json.RawMessage(`{
		"items": [{"id":1,"name":"canônico","quantity":1}],
		"data":  [{"ID":99,"Name":"fantasma","Quantity":99}]
	}`)

	result, err := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "canônico", result.Items[0].Name)
}

func TestNormalizeList_UnrecognizedShape_EmptyList(t *testing.T) {
	result, err := backend.NormalizeList(json.RawMessage(`{"message":"ok"}`), "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.Pagination.TotalItems)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestNormalizeList_Idempotence(t *testing.T) {
	envelope := json.RawMessage(`{"items": [{"ID":1,"Name":"X","Quantity":5}], "pagination": {"currentPage":1,"totalPages":1,"totalItems":1,"itemsPerPage":5}}`)

	first, err1 := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)
	second, err2 := backend.NormalizeList(envelope, "items", 1, 5, domain.DecodeItem)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestNormalizeList_CollectionKeyPerResource(t *testing.T) {
	// A chave da coleção é por recurso: "warehouses" para armazéns.
	envelope := json.RawMessage(`{"warehouses": [{"ID":3,"Name":"Sul","City":"Curitiba"}]}`)

	result, err := backend.NormalizeList(envelope, "warehouses", 1, 10, domain.DecodeWarehouse)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "Sul", result.Items[0].Name)
}

// --- Testes para NormalizeItem ---

func TestNormalizeItem_Success(t *testing.T) {
	data, err := backend.NormalizeItem(json.RawMessage(`{"message":"ok","data":{"ID":1,"Name":"X"}}`))

	assert.NoError(t, err)
	assert.JSONEq(t, `{"ID":1,"Name":"X"}`, string(data))
}

func TestNormalizeItem_Fail_MissingDataKey(t *testing.T) {
	// Intencionalmente mais estrito que a listagem: só 'data' é reconhecido.
	_, err := backend.NormalizeItem(json.RawMessage(`{"message":"ok"}`))

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidFormatError{}, err)
}

func TestNormalizeItem_Fail_NullData(t *testing.T) {
	_, err := backend.NormalizeItem(json.RawMessage(`{"data":null}`))

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidFormatError{}, err)
}

func TestNormalizeItem_Fail_NotAnObject(t *testing.T) {
	_, err := backend.NormalizeItem(json.RawMessage(`[1,2,3]`))

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidFormatError{}, err)
}
