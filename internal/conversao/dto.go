// internal/conversao/dto.go
package conversao

// ConverterLeadDTO é o corpo de POST /leads/{id}/converter.
// Arcadas omitido assume 1 (venda de uma arcada).
type ConverterLeadDTO struct {
	Arcadas *int `json:"arcadas" validate:"omitempty,min=1"`
}
