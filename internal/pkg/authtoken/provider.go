package authtoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockadmin/internal/pkg/cache"
	"stockadmin/internal/pkg/logger"
)

// Provider é a capacidade única de resolução de credencial do painel.
// Toda requisição ao backend pede um token fresco antes de ser emitida;
// o Provider pode fazer cache internamente, o chamador não assume nada
// sobre o tempo de vida da credencial.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// ErrNoToken é retornado quando um nível da cadeia não tem token disponível.
var ErrNoToken = errors.New("nenhum token de autenticação disponível")

// --- Níveis de resolução ---

// StaticProvider devolve um token fixo vindo da configuração (AUTH_TOKEN).
// É o último nível da cadeia; um token vazio desabilita o nível.
type StaticProvider struct {
	token string
}

// NewStaticProvider cria o nível estático de resolução.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

func (p *StaticProvider) Token(_ context.Context) (string, error) {
	if p.token == "" {
		return "", ErrNoToken
	}
	return p.token, nil
}

// DefaultCacheKey é a chave sob a qual o token de sessão fica no cache.
const DefaultCacheKey = "auth_token"

// CacheProvider resolve o token a partir do cache (Redis).
// Falha de cache é tratada como miss: a cadeia cai para o próximo nível
// em vez de derrubar a requisição.
type CacheProvider struct {
	cache cache.Client
	key   string
}

// NewCacheProvider cria o nível de cache de resolução.
func NewCacheProvider(c cache.Client, key string) *CacheProvider {
	if key == "" {
		key = DefaultCacheKey
	}
	return &CacheProvider{cache: c, key: key}
}

func (p *CacheProvider) Token(ctx context.Context) (string, error) {
	val, err := p.cache.Get(ctx, p.key)
	if err != nil || val == "" {
		return "", ErrNoToken
	}
	return val, nil
}

// --- Token vindo da própria requisição ao painel ---

type contextKey int

const requestTokenKey contextKey = iota

// WithRequestToken anexa ao contexto o bearer token recebido pela superfície
// do painel (extraído pelo middleware).
func WithRequestToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, requestTokenKey, token)
}

// ContextProvider resolve o token anexado ao contexto da requisição.
// É o primeiro nível da cadeia: a credencial do chamador tem precedência.
type ContextProvider struct{}

// NewContextProvider cria o nível de resolução por contexto.
func NewContextProvider() *ContextProvider {
	return &ContextProvider{}
}

func (p *ContextProvider) Token(ctx context.Context) (string, error) {
	token, ok := ctx.Value(requestTokenKey).(string)
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// --- Cadeia de resolução ---

// Chain percorre os níveis em ordem fixa e devolve o primeiro token
// utilizável. Tokens vazios e JWTs já expirados são pulados. Esta é a
// ÚNICA ordem de resolução do painel: nenhum outro ponto do código
// consulta níveis de token por conta própria.
type Chain struct {
	providers []Provider
	log       logger.Logger
}

// NewChain cria a cadeia de resolução com os níveis na ordem dada.
func NewChain(log logger.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, log: log}
}

func (c *Chain) Token(ctx context.Context) (string, error) {
	for i, p := range c.providers {
		token, err := p.Token(ctx)
		if err != nil || token == "" {
			continue
		}
		if IsExpired(token) {
			c.log.Debug("Token expirado encontrado na cadeia de resolução, pulando nível.",
				map[string]interface{}{"tier": i})
			continue
		}
		return token, nil
	}
	return "", ErrNoToken
}

// --- Inspeção de claims (sem verificação de assinatura) ---

// InspectClaims decodifica as claims registradas de um JWT SEM validar a
// assinatura. O painel nunca possui a chave do provedor de identidade;
// a inspeção serve apenas para pular tokens expirados e para as
// ferramentas de depuração de autenticação.
func InspectClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired informa se um token JWT já passou do seu 'exp'.
// Tokens opacos (não-JWT) e tokens sem 'exp' são considerados utilizáveis:
// quem decide sobre eles é o backend.
func IsExpired(token string) bool {
	claims, err := InspectClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
