package dataset

import "fmt"

// SchemaError indica colunas obrigatórias ausentes ou valores que não parseiam
// no tipo esperado. É fatal para o carregamento da tabela afetada
type SchemaError struct {
	Table  string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("erro de esquema na tabela %s, coluna %s: %s", e.Table, e.Column, e.Reason)
	}
	return fmt.Sprintf("erro de esquema na tabela %s: %s", e.Table, e.Reason)
}

// ValidationError indica violação de invariante semântica (períodos duplicados,
// valores negativos indevidos, fluxo líquido inconsistente). Também é fatal
// para o carregamento da tabela afetada
type ValidationError struct {
	Table  string
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("erro de validação na tabela %s, linha %d: %s", e.Table, e.Row, e.Reason)
}
