package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API do painel.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"O nome do item não pode ser vazio."`
}
