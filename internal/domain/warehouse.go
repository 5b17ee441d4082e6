package domain

import "encoding/json"

// WarehousesPerPage é o tamanho de página padrão das listagens de armazéns.
const WarehousesPerPage = 10

// Warehouse representa um armazém físico ou lógico na convenção do painel.
type Warehouse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// WarehouseFilter define os parâmetros de busca e paginação das listagens
// de armazéns. Não existe filtro de status para armazéns.
type WarehouseFilter struct {
	Search string
	Page   int
	Limit  int
}

// WarehouseList é o resultado canônico de uma listagem de armazéns.
type WarehouseList struct {
	Warehouses []Warehouse `json:"warehouses"`
	Pagination Pagination  `json:"pagination"`
}

// DecodeWarehouse decodifica um armazém bruto que pode vir tanto na
// convenção minúscula do painel quanto na capitalizada do backend.
// O json.Unmarshal do Go é case-insensitive (com preferência pela chave
// exata quando ambas existem), o que implementa o fallback campo a campo
// minúscula-ou-Capitalizada em uma única decodificação.
func DecodeWarehouse(raw json.RawMessage) (Warehouse, error) {
	var w Warehouse
	if err := json.Unmarshal(raw, &w); err != nil {
		return Warehouse{}, err
	}
	return w, nil
}
