package warehouseservice_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/service/warehouseservice"
)

// MockExecutor é uma implementação mock da interface Executor
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Do(ctx context.Context, method, rawURL string, query url.Values, form url.Values, jsonBody interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, method, rawURL, query, form, jsonBody)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

const baseURL = "http://warehouse.local"

func newService(exec *MockExecutor) *warehouseservice.Service {
	return warehouseservice.NewService(exec, baseURL, logger.NewLogger("error"))
}

// TestList_Success_WarehousesKey verifica que a coleção é lida sob a chave
// "warehouses" e que ambas as convenções de nomes do backend decodificam.
func TestList_Success_WarehousesKey(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/list",
		mock.MatchedBy(func(q url.Values) bool { return len(q) == 0 }),
		mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"warehouses":[
			{"ID":1,"Name":"Armazém Sul","City":"Curitiba"},
			{"id":2,"name":"Armazém Norte","city":"Manaus"}
		]}`), nil)

	svc := newService(mockExec)

	result, err := svc.List(context.Background(), domain.WarehouseFilter{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, result.Warehouses, 2)
	assert.Equal(t, "Armazém Sul", result.Warehouses[0].Name)
	assert.Equal(t, "Curitiba", result.Warehouses[0].City)
	assert.Equal(t, "Armazém Norte", result.Warehouses[1].Name)
	mockExec.AssertExpectations(t)
}

// TestList_Success_NonDefaultsPresent verifica que busca, página e limite
// fora do padrão aparecem na query.
func TestList_Success_NonDefaultsPresent(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/list",
		mock.MatchedBy(func(q url.Values) bool {
			return q.Get("search") == "sul" && q.Get("page") == "2" && q.Get("limit") == "25"
		}),
		mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"warehouses":[]}`), nil)

	svc := newService(mockExec)

	result, err := svc.List(context.Background(), domain.WarehouseFilter{Search: "sul", Page: 2, Limit: 25})

	assert.NoError(t, err)
	assert.Empty(t, result.Warehouses)
	mockExec.AssertExpectations(t)
}

func TestList_Success_ServerPagination(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/list", mock.Anything, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{
			"warehouses":[{"ID":11,"Name":"Armazém Leste"}],
			"pagination":{"currentPage":2,"totalPages":2,"totalItems":11,"itemsPerPage":10}
		}`), nil)

	svc := newService(mockExec)

	result, err := svc.List(context.Background(), domain.WarehouseFilter{Page: 2})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 11, result.Pagination.StartIndex)
	assert.Equal(t, 11, result.Pagination.EndIndex)
}

func TestList_Fail_ExecutorError(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/list", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperror.NewAPIError(500, "erro interno", nil))

	svc := newService(mockExec)

	_, err := svc.List(context.Background(), domain.WarehouseFilter{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.APIError{}, err)
}

func TestGet_Success(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/3", mock.Anything, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"message":"ok","data":{"ID":3,"Name":"Armazém Sul","Address":"Rua A, 100","City":"Curitiba","Country":"Brasil"}}`), nil)

	svc := newService(mockExec)

	warehouse, err := svc.Get(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, warehouse.ID)
	assert.Equal(t, "Armazém Sul", warehouse.Name)
	assert.Equal(t, "Brasil", warehouse.Country)
	mockExec.AssertExpectations(t)
}

func TestGet_Fail_MissingDataKey(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "GET", baseURL+"/warehouse/3", mock.Anything, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"message":"ok"}`), nil)

	svc := newService(mockExec)

	_, err := svc.Get(context.Background(), 3)

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidFormatError{}, err)
}

func TestGet_Fail_InvalidID(t *testing.T) {
	mockExec := new(MockExecutor)

	svc := newService(mockExec)

	_, err := svc.Get(context.Background(), 0)

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockExec.AssertNotCalled(t, "Do")
}

func TestDelete_Success(t *testing.T) {
	mockExec := new(MockExecutor)
	mockExec.On("Do", mock.Anything, "DELETE", baseURL+"/warehouse/5", mock.Anything, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{}`), nil)

	svc := newService(mockExec)

	err := svc.Delete(context.Background(), 5)

	assert.NoError(t, err)
	mockExec.AssertExpectations(t)
}

func TestDelete_Fail_InvalidID(t *testing.T) {
	mockExec := new(MockExecutor)

	svc := newService(mockExec)

	err := svc.Delete(context.Background(), 0)

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockExec.AssertNotCalled(t, "Do")
}
