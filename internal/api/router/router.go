package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"stockadmin/internal/api/debug"
	"stockadmin/internal/api/inventory"
	"stockadmin/internal/api/warehouse"
	"stockadmin/internal/pkg/cache"
	"stockadmin/internal/pkg/logger"
	"stockadmin/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal do painel.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	inventoryHandler *inventory.Handler,
	warehouseHandler *warehouse.Handler,
	debugHandler *debug.Handler,
	cacheClient cache.Client,
	log logger.Logger,
	rateLimit int,
	ratePeriod time.Duration,
) http.Handler {

	r := mux.NewRouter()

	// --- 1. Health Check ---
	r.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)

	// --- 2. Rotas v1 ---
	v1 := r.PathPrefix("/v1").Subrouter()

	// Inventário
	v1.HandleFunc("/inventory", inventoryHandler.ListHandler).Methods(http.MethodGet)
	v1.HandleFunc("/inventory", inventoryHandler.CreateHandler).Methods(http.MethodPost)
	v1.HandleFunc("/inventory/{id}", inventoryHandler.GetHandler).Methods(http.MethodGet)
	v1.HandleFunc("/inventory/{id}", inventoryHandler.UpdateHandler).Methods(http.MethodPut)
	v1.HandleFunc("/inventory/{id}", inventoryHandler.DeleteHandler).Methods(http.MethodDelete)

	// Armazéns (o serviço remoto não expõe criação/atualização)
	v1.HandleFunc("/warehouses", warehouseHandler.ListHandler).Methods(http.MethodGet)
	v1.HandleFunc("/warehouses/{id}", warehouseHandler.GetHandler).Methods(http.MethodGet)
	v1.HandleFunc("/warehouses/{id}", warehouseHandler.DeleteHandler).Methods(http.MethodDelete)

	// Depuração de autenticação
	v1.HandleFunc("/debug/auth", debugHandler.AuthHandler).Methods(http.MethodGet)

	// --- 3. Middlewares Globais ---
	// Ordem: rate limit primeiro, depois log, depois extração do bearer.
	var handler http.Handler = r
	handler = middleware.BearerForwarder()(handler)
	handler = middleware.RequestLogger(log)(handler)
	handler = middleware.RateLimiter(cacheClient, rateLimit, ratePeriod)(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
