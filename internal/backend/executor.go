package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	apperror "stockadmin/internal/errors"
	"stockadmin/internal/pkg/authtoken"
	"stockadmin/internal/pkg/logger"
)

// Executor emite UMA chamada HTTP autenticada contra um serviço de backend
// e devolve o envelope bruto da resposta. Não há retry automático nem
// renovação de credencial aqui: cada falha é propagada tipada ao chamador.
type Executor struct {
	http   *resty.Client
	tokens authtoken.Provider
	log    logger.Logger
}

// NewExecutor cria o executor de requisições com o timeout de transporte
// configurado. O Provider é consultado antes de CADA requisição; o
// chamador nunca assume um tempo de vida fixo para a credencial.
func NewExecutor(timeout time.Duration, tokens authtoken.Provider, log logger.Logger) *Executor {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0) // Sem retry: o chamador decide o que fazer com a falha

	return &Executor{http: client, tokens: tokens, log: log}
}

// Do executa uma chamada HTTP com header Authorization Bearer.
// Se a resolução de token falhar, a requisição NÃO é emitida e o erro é
// UnauthenticatedError. O corpo é form-urlencoded quando form é fornecido,
// JSON quando jsonBody é fornecido; nunca os dois.
func (e *Executor) Do(ctx context.Context, method, rawURL string, query url.Values, form url.Values, jsonBody interface{}) (json.RawMessage, error) {
	token, err := e.tokens.Token(ctx)
	if err != nil || token == "" {
		return nil, apperror.NewUnauthenticatedError("Nenhuma credencial disponível para a requisição.")
	}

	req := e.http.R().
		SetContext(ctx).
		SetAuthToken(token)

	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	switch {
	case form != nil:
		// resty define Content-Type: application/x-www-form-urlencoded
		req.SetFormDataFromValues(form)
	case jsonBody != nil:
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(jsonBody)
	}

	resp, err := req.Execute(method, rawURL)
	if err != nil {
		// Falha de transporte (DNS, conexão recusada, timeout):
		// modelada como APIError com StatusCode 0 para que o chamador
		// distinga "nunca chegou ao servidor" de "servidor rejeitou".
		e.log.Error("Falha de transporte na chamada ao backend.", err)
		return nil, apperror.NewNetworkError(err)
	}

	if resp.IsSuccess() {
		body := resp.Body()
		// 204/corpo vazio vira objeto vazio em vez de tentativa de parse
		if resp.StatusCode() == http.StatusNoContent || len(body) == 0 {
			return json.RawMessage(`{}`), nil
		}
		return json.RawMessage(body), nil
	}

	return nil, e.apiError(resp)
}

// apiError monta o erro tipado de uma resposta não-2xx, preservando o
// corpo parseado (se houver) e extraindo a mensagem do backend quando
// presente.
func (e *Executor) apiError(resp *resty.Response) error {
	statusCode := resp.StatusCode()
	msg := fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))

	body := resp.Body()
	var parsedBody json.RawMessage
	if len(body) > 0 && json.Valid(body) {
		parsedBody = json.RawMessage(append([]byte(nil), body...))

		var envelope struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
			msg = envelope.Message
		}
	}

	e.log.Warn("Backend rejeitou a requisição.", map[string]interface{}{
		"status": statusCode,
		"url":    resp.Request.URL,
	})

	return apperror.NewAPIError(statusCode, msg, parsedBody)
}
