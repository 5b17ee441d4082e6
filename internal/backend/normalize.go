package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
)

// Este arquivo é a camada de tolerância para o contrato instável dos
// backends: cada serviço já respondeu em formatos diferentes ao longo do
// tempo, e o normalizador colapsa todos eles no formato canônico
// {itens, paginação}. A ORDEM das regras é contrato: um payload ambíguo
// (que satisfaz mais de uma regra) deve ser resolvido pela primeira.

// ListResult é o resultado canônico de uma listagem normalizada.
type ListResult[T any] struct {
	Items      []T
	Pagination domain.Pagination
}

// NormalizeList colapsa um envelope bruto de listagem em ListResult.
// itemsKey é a chave da coleção no envelope ("items" para inventário,
// "warehouses" para armazéns) e decode é o mapeador de entidade do
// recurso. Regras, na ordem (a primeira que casa vence):
//
//  1. objeto com itemsKey no topo (paginação do servidor, se presente)
//  2. array puro no topo
//  3. objeto com 'data' array
//  4. objeto com 'data' contendo itemsKey (paginação do servidor, se presente)
//  5. nada reconhecido: lista vazia
func NormalizeList[T any](envelope json.RawMessage, itemsKey string, requestedPage, requestedLimit int, decode func(json.RawMessage) (T, error)) (ListResult[T], error) {
	var object map[string]json.RawMessage
	isObject := json.Unmarshal(envelope, &object) == nil && object != nil

	// Regra 1: a coleção está no topo do envelope
	if isObject {
		if arr, ok := decodeArray(object[itemsKey]); ok {
			items, err := decodeAll(arr, decode)
			if err != nil {
				return ListResult[T]{}, err
			}
			return ListResult[T]{
				Items:      items,
				Pagination: paginationFor(object, requestedPage, requestedLimit, len(arr)),
			}, nil
		}
	}

	// Regra 2: o envelope inteiro é um array de itens
	if arr, ok := decodeArray(envelope); ok {
		items, err := decodeAll(arr, decode)
		if err != nil {
			return ListResult[T]{}, err
		}
		return ListResult[T]{
			Items:      items,
			Pagination: domain.SynthesizedPagination(requestedPage, requestedLimit, len(arr)),
		}, nil
	}

	if isObject {
		if rawData, hasData := object["data"]; hasData {
			// Regra 3: 'data' é diretamente o array de itens
			if arr, ok := decodeArray(rawData); ok {
				items, err := decodeAll(arr, decode)
				if err != nil {
					return ListResult[T]{}, err
				}
				return ListResult[T]{
					Items:      items,
					Pagination: domain.SynthesizedPagination(requestedPage, requestedLimit, len(arr)),
				}, nil
			}

			// Regra 4: 'data' é um objeto contendo a coleção
			var dataObject map[string]json.RawMessage
			if json.Unmarshal(rawData, &dataObject) == nil && dataObject != nil {
				if arr, ok := decodeArray(dataObject[itemsKey]); ok {
					items, err := decodeAll(arr, decode)
					if err != nil {
						return ListResult[T]{}, err
					}
					return ListResult[T]{
						Items:      items,
						Pagination: paginationFor(dataObject, requestedPage, requestedLimit, len(arr)),
					}, nil
				}
			}
		}
	}

	// Regra 5: formato não reconhecido, lista vazia
	return ListResult[T]{
		Items:      []T{},
		Pagination: domain.SynthesizedPagination(requestedPage, requestedLimit, 0),
	}, nil
}

// NormalizeItem extrai a entidade de uma resposta de entidade única.
// Somente o formato {message, data} é reconhecido: qualquer outro é erro
// de formato. Intencionalmente mais estrito que a listagem.
func NormalizeItem(envelope json.RawMessage) (json.RawMessage, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(envelope, &object); err != nil || object == nil {
		return nil, apperror.NewInvalidFormatError("a resposta de entidade única não é um objeto JSON.")
	}

	data, ok := object["data"]
	if !ok || isJSONNull(data) {
		return nil, apperror.NewInvalidFormatError("a resposta de entidade única não contém a chave 'data'.")
	}

	return data, nil
}

// --- Auxiliares ---

// decodeArray decodifica raw como array JSON. Valores ausentes, null ou de
// outro tipo resultam em ok = false (a regra correspondente não casa).
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// decodeAll aplica o mapeador de entidade a cada elemento da coleção.
func decodeAll[T any](raws []json.RawMessage, decode func(json.RawMessage) (T, error)) ([]T, error) {
	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := decode(raw)
		if err != nil {
			return nil, apperror.NewInvalidFormatError(
				fmt.Sprintf("o item %d da lista não pôde ser decodificado: %v", i, err))
		}
		items = append(items, item)
	}
	return items, nil
}

// paginationFor deriva a paginação dos metadados do servidor quando o
// objeto os traz; caso contrário, sintetiza.
func paginationFor(object map[string]json.RawMessage, requestedPage, requestedLimit, itemCount int) domain.Pagination {
	raw, ok := object["pagination"]
	if !ok || isJSONNull(raw) {
		return domain.SynthesizedPagination(requestedPage, requestedLimit, itemCount)
	}

	var meta domain.PageMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return domain.SynthesizedPagination(requestedPage, requestedLimit, itemCount)
	}
	return domain.PaginationFromMeta(meta, requestedPage, requestedLimit, itemCount)
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
