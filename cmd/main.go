package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"stockadmin/config"
	"stockadmin/internal/pkg/authtoken"
	"stockadmin/internal/pkg/cache"
	"stockadmin/internal/pkg/logger"

	// Camadas do painel para Injeção de Dependências
	"stockadmin/internal/api/debug"
	"stockadmin/internal/api/inventory"
	"stockadmin/internal/api/router"
	"stockadmin/internal/api/warehouse"
	"stockadmin/internal/backend"
	"stockadmin/internal/service/inventoryservice"
	"stockadmin/internal/service/warehouseservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando painel StockAdmin...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o arquivo .env não for encontrado, avisamos mas continuamos,
		// pois as variáveis essenciais podem estar no ambiente do sistema.
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (Redis) - nível de token em cache + rate limiting
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	appLog.Info("Cliente Redis inicializado.", nil)

	// B. Cadeia de resolução de token
	// Ordem única de resolução: requisição → cache → configuração.
	contextTier := authtoken.NewContextProvider()
	cacheTier := authtoken.NewCacheProvider(cacheClient, authtoken.DefaultCacheKey)
	staticTier := authtoken.NewStaticProvider(cfg.AuthToken)
	tokenChain := authtoken.NewChain(appLog, contextTier, cacheTier, staticTier)
	appLog.Debug("Cadeia de resolução de token montada.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Executor -> Service -> Handler

	// A. Executor (transporte autenticado para os backends)
	executor := backend.NewExecutor(cfg.HTTPTimeout, tokenChain, appLog)
	appLog.Debug("Executor de requisições inicializado.", nil)

	// B. Serviços (clientes de recurso)
	inventorySvc := inventoryservice.NewService(executor, cfg.InventoryAPIBaseURL, appLog)
	warehouseSvc := warehouseservice.NewService(executor, cfg.WarehouseAPIBaseURL, appLog)
	appLog.Debug("Serviços de recurso inicializados.", nil)

	// C. Handlers (camada de apresentação)
	inventoryHandler := inventory.NewHandler(inventorySvc, appLog)
	warehouseHandler := warehouse.NewHandler(warehouseSvc, appLog)
	debugHandler := debug.NewHandler(tokenChain, []debug.NamedProvider{
		{Name: "request", Provider: contextTier},
		{Name: "cache", Provider: cacheTier},
		{Name: "env", Provider: staticTier},
	}, appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(inventoryHandler, warehouseHandler, debugHandler,
		cacheClient, appLog, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Painel StockAdmin ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
