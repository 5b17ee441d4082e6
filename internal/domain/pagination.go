package domain

// Pagination é o objeto de valor derivado que acompanha toda listagem
// normalizada. Invariante: StartIndex = (CurrentPage-1)*ItemsPerPage + 1 e
// EndIndex = min(CurrentPage*ItemsPerPage, TotalItems) quando há metadados
// do servidor; StartIndex pode exceder EndIndex apenas quando TotalItems = 0.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	StartIndex   int `json:"startIndex"`
	EndIndex     int `json:"endIndex"`
}

// PageMeta é o formato dos metadados de paginação como chegam do backend.
type PageMeta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// SynthesizedPagination produz a paginação quando o backend não envia
// metadados: a lista inteira é tratada como uma única página.
func SynthesizedPagination(requestedPage, requestedLimit, totalItems int) Pagination {
	return Pagination{
		CurrentPage:  requestedPage,
		TotalPages:   1,
		TotalItems:   totalItems,
		ItemsPerPage: requestedLimit,
		StartIndex:   1,
		EndIndex:     totalItems,
	}
}

// PaginationFromMeta deriva a paginação dos metadados do servidor.
// Campos zerados caem para os valores da requisição (o backend nem sempre
// preenche todos), e os índices de exibição são calculados aqui, nunca
// confiados ao servidor.
func PaginationFromMeta(meta PageMeta, requestedPage, requestedLimit, itemCount int) Pagination {
	currentPage := meta.CurrentPage
	if currentPage == 0 {
		currentPage = requestedPage
	}
	totalPages := meta.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}
	totalItems := meta.TotalItems
	if totalItems == 0 {
		totalItems = itemCount
	}
	itemsPerPage := meta.ItemsPerPage
	if itemsPerPage == 0 {
		itemsPerPage = requestedLimit
	}

	endIndex := currentPage * itemsPerPage
	if endIndex > totalItems {
		endIndex = totalItems
	}

	return Pagination{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		StartIndex:   (currentPage-1)*itemsPerPage + 1,
		EndIndex:     endIndex,
	}
}
