package debug

import (
	"encoding/json"
	"net/http"
	"time"

	"stockadmin/internal/pkg/authtoken"
	"stockadmin/internal/pkg/logger"
)

// Ferramenta de depuração de autenticação: relata quais níveis da cadeia de
// resolução têm token disponível e o resumo das claims do token resolvido.
// O token em si NUNCA aparece na resposta.

// NamedProvider associa um nível de resolução ao seu nome de exibição.
type NamedProvider struct {
	Name     string
	Provider authtoken.Provider
}

// TierReport descreve o estado de um nível da cadeia.
type TierReport struct {
	Tier    string `json:"tier"`
	Found   bool   `json:"found"`
	Expired bool   `json:"expired,omitempty"`
}

// AuthReport é a resposta completa do endpoint de depuração.
type AuthReport struct {
	Tiers     []TierReport `json:"tiers"`
	Resolved  bool         `json:"resolved"`
	Subject   string       `json:"subject,omitempty"`
	Issuer    string       `json:"issuer,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

// Handler expõe o relatório de resolução de token.
type Handler struct {
	Tiers  []NamedProvider
	Chain  authtoken.Provider
	Logger logger.Logger
}

// NewHandler cria o handler de depuração com os níveis na ordem da cadeia.
func NewHandler(chain authtoken.Provider, tiers []NamedProvider, log logger.Logger) *Handler {
	return &Handler{Tiers: tiers, Chain: chain, Logger: log}
}

// AuthHandler lida com GET /v1/debug/auth.
func (h *Handler) AuthHandler(w http.ResponseWriter, r *http.Request) {
	report := AuthReport{Tiers: make([]TierReport, 0, len(h.Tiers))}

	for _, tier := range h.Tiers {
		token, err := tier.Provider.Token(r.Context())
		found := err == nil && token != ""

		report.Tiers = append(report.Tiers, TierReport{
			Tier:    tier.Name,
			Found:   found,
			Expired: found && authtoken.IsExpired(token),
		})
	}

	if token, err := h.Chain.Token(r.Context()); err == nil {
		report.Resolved = true

		// Claims só são legíveis quando o token é um JWT; tokens opacos
		// resolvem sem resumo de claims.
		if claims, claimsErr := authtoken.InspectClaims(token); claimsErr == nil {
			report.Subject = claims.Subject
			report.Issuer = claims.Issuer
			if claims.ExpiresAt != nil {
				expires := claims.ExpiresAt.Time
				report.ExpiresAt = &expires
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.Logger.Error("Falha ao codificar relatório de autenticação.", err)
	}
}
