package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do painel administrativo StockAdmin.
// Os campos cobrem a superfície HTTP do painel, os serviços de backend
// (Inventário e Armazéns) e os recursos de infraestrutura (Cache, Token).
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Serviços de Backend (APIs REST remotas)
	InventoryAPIBaseURL string
	WarehouseAPIBaseURL string
	HTTPTimeout         time.Duration // Timeout de transporte para chamadas ao backend

	// Cache (Redis) - usado pela resolução de token e pelo rate limiting
	RedisAddr    string
	CacheTimeout time.Duration

	// Autenticação
	// AuthToken é o último nível da cadeia de resolução de token (fallback estático).
	// A emissão/renovação de tokens é responsabilidade do provedor de identidade externo.
	AuthToken string

	// Rate Limiting da superfície do painel
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Serviços de Backend
		// mustGetEnv garante que o painel não inicie sem saber onde estão as APIs.
		// Os dois serviços podem rodar em hosts/portas distintos.
		InventoryAPIBaseURL: mustGetEnv("INVENTORY_API_BASE_URL"),
		WarehouseAPIBaseURL: mustGetEnv("WAREHOUSE_API_BASE_URL"),
		HTTPTimeout:         getDurationEnv("HTTP_TIMEOUT_SEC", 10) * time.Second,

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 4. Autenticação (token estático opcional; vazio desabilita o nível)
		AuthToken: getEnv("AUTH_TOKEN", ""),

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
