package middleware

import (
	"net/http"
	"strings"

	"stockadmin/internal/pkg/authtoken"
)

// BearerForwarder extrai o bearer token do header Authorization da
// requisição recebida pelo painel e o anexa ao contexto. Esse token é o
// primeiro nível da cadeia de resolução: a credencial do chamador tem
// precedência sobre cache e configuração. Requisições sem header seguem
// normalmente; a cadeia cai para os níveis seguintes.
func BearerForwarder() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token := strings.TrimSpace(authHeader[len("Bearer "):])
				if token != "" {
					r = r.WithContext(authtoken.WithRequestToken(r.Context(), token))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
