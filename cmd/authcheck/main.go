package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"stockadmin/config"
	"stockadmin/internal/pkg/authtoken"
	"stockadmin/internal/pkg/cache"
	"stockadmin/internal/pkg/logger"
)

// authcheck é a ferramenta de linha de comando para depurar a resolução de
// token do painel: mostra qual nível da cadeia tem credencial, se ela está
// expirada e o resumo das claims, sem nunca imprimir o token em si.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	var rawToken string
	flag.StringVar(&rawToken, "token", "", "inspect a specific token instead of the resolution chain")
	flag.Parse()

	// Inspeção direta de um token fornecido: não precisa de config.
	if rawToken != "" {
		printClaims(rawToken)
		return
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger("error") // só erros; a saída útil vai para stdout

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)

	tiers := []struct {
		name     string
		provider authtoken.Provider
	}{
		{"cache", authtoken.NewCacheProvider(cacheClient, authtoken.DefaultCacheKey)},
		{"env", authtoken.NewStaticProvider(cfg.AuthToken)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fmt.Println("=== Resolução de token StockAdmin ===")

	var resolved string
	for _, tier := range tiers {
		token, err := tier.provider.Token(ctx)
		switch {
		case err != nil || token == "":
			fmt.Printf("%-6s: não encontrado\n", tier.name)
		case authtoken.IsExpired(token):
			fmt.Printf("%-6s: encontrado (EXPIRADO)\n", tier.name)
		default:
			fmt.Printf("%-6s: encontrado\n", tier.name)
			if resolved == "" {
				resolved = token
			}
		}
	}

	if resolved == "" {
		fmt.Println("\nNenhum token utilizável: as requisições ao backend falharão com UNAUTHENTICATED.")
		appLog.Warn("Cadeia de resolução vazia.", nil)
		return
	}

	fmt.Println("\nToken resolvido:")
	printClaims(resolved)
}

// printClaims imprime o resumo das claims de um JWT (sem validar assinatura).
func printClaims(token string) {
	claims, err := authtoken.InspectClaims(token)
	if err != nil {
		fmt.Println("  token opaco (não-JWT): claims ilegíveis, o backend decide.")
		return
	}

	if claims.Subject != "" {
		fmt.Printf("  subject: %s\n", claims.Subject)
	}
	if claims.Issuer != "" {
		fmt.Printf("  issuer:  %s\n", claims.Issuer)
	}
	if claims.ExpiresAt != nil {
		state := "válido"
		if authtoken.IsExpired(token) {
			state = "EXPIRADO"
		}
		fmt.Printf("  expira:  %s (%s)\n", claims.ExpiresAt.Format(time.RFC3339), state)
	} else {
		fmt.Println("  expira:  sem claim 'exp'")
	}
}
