package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ItemStatus é o status derivado de estoque de um item de inventário.
type ItemStatus string

// Os três status possíveis, derivados exclusivamente da quantidade.
const (
	StatusInStock    ItemStatus = "In Stock"
	StatusLowStock   ItemStatus = "Low Stock"
	StatusOutOfStock ItemStatus = "Out of Stock"
)

// ItemsPerPage é o tamanho de página padrão das listagens de inventário.
const ItemsPerPage = 5

// InventoryItem representa um item de inventário na convenção do painel.
// É um objeto de valor imutável: o ID vem sempre do backend e qualquer
// "atualização" produz um novo registro a partir da resposta do servidor.
type InventoryItem struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Quantity    int        `json:"quantity"`
	Price       float64    `json:"price"`
	Status      ItemStatus `json:"status"`
	Supplier    string     `json:"supplier"`
	LastUpdated string     `json:"lastUpdated"`
	Unit        string     `json:"unit,omitempty"`
	Measure     string     `json:"measure,omitempty"`
	Location    string     `json:"location,omitempty"`
}

// BackendInventoryItem é o item como chega do serviço de inventário,
// na convenção de nomes capitalizada do backend.
type BackendInventoryItem struct {
	ID        int    `json:"ID"`
	Name      string `json:"Name"`
	Unit      string `json:"Unit"`
	Quantity  int    `json:"Quantity"`
	Category  string `json:"Category"`
	Measure   string `json:"Measure"`
	Location  string `json:"Location"`
	CreatedAt string `json:"CreatedAt"`
}

// InventoryFilter define os parâmetros de busca e paginação das listagens.
type InventoryFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// InventoryDraft é o conjunto de campos aceito na criação de um item.
type InventoryDraft struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Measure  string `json:"measure"`
	Location string `json:"location"`
	Supplier string `json:"supplier"`
}

// InventoryPatch carrega campos parciais de atualização. Campos nil (ou
// vazios após trim) mantêm o valor atual do item; o envio ao backend é
// SEMPRE o registro completo resultante da mesclagem.
type InventoryPatch struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Measure  *string `json:"measure,omitempty"`
	Location *string `json:"location,omitempty"`
}

// InventoryList é o resultado canônico de uma listagem de inventário.
type InventoryList struct {
	Items      []InventoryItem `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// StatusForQuantity deriva o status a partir da quantidade.
// Os limites são estritamente "maior que": quantidade 50 é Low Stock e
// quantidade 10 é Out of Stock.
func StatusForQuantity(quantity int) ItemStatus {
	switch {
	case quantity > 50:
		return StatusInStock
	case quantity > 10:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// MapBackendItem traduz um item da convenção do backend para a do painel.
// Este é o ÚNICO ponto de tradução de nomes de campos do inventário.
func MapBackendItem(b BackendInventoryItem) InventoryItem {
	supplier := b.Location
	if supplier == "" {
		supplier = "Unknown"
	}

	return InventoryItem{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Quantity: b.Quantity,
		Price:    0, // O backend não fornece preço
		Status:   StatusForQuantity(b.Quantity),
		Supplier: supplier,
		// Mantém apenas a porção de data do timestamp ISO
		LastUpdated: dateOnly(b.CreatedAt),
		Unit:        b.Unit,
		Measure:     b.Measure,
		Location:    b.Location,
	}
}

// DecodeItem decodifica um item bruto que pode estar na convenção do
// backend OU já na convenção do painel. A detecção testa a presença da
// chave exata "ID" (o json.Unmarshal do Go é case-insensitive, então a
// sondagem precisa olhar as chaves brutas).
func DecodeItem(raw json.RawMessage) (InventoryItem, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return InventoryItem{}, err
	}

	if _, isBackend := probe["ID"]; isBackend {
		var b BackendInventoryItem
		if err := json.Unmarshal(raw, &b); err != nil {
			return InventoryItem{}, err
		}
		return MapBackendItem(b), nil
	}

	var item InventoryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return InventoryItem{}, err
	}
	return item, nil
}

// dateOnly trunca um timestamp ISO para a porção de data.
// Timestamp ausente cai para a data corrente.
func dateOnly(timestamp string) string {
	if timestamp == "" {
		return time.Now().UTC().Format("2006-01-02")
	}
	return strings.SplitN(timestamp, "T", 2)[0]
}
