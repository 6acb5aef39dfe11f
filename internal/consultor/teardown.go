// internal/consultor/teardown.go
package consultor

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/hierarquia"
	"github.com/OdontoPrime/api-indicacoes/internal/vinculo"
)

// Teardown remove um consultor e suas dependências em ordem fixa:
// comissões → vínculos de estabelecimento → aresta de hierarquia → consultor.
// Leads ficam no banco como histórico. Passos dependentes que falham geram
// aviso e a remoção continua; só a remoção do próprio consultor é fatal.
type Teardown struct {
	DB          *gorm.DB
	Consultores Repository
	Comissoes   *comissao.Repository
	Vinculos    *vinculo.Repository
	Hierarquia  *hierarquia.Repository
}

// RelatorioTeardown registra o que cada passo fez.
type RelatorioTeardown struct {
	ConsultorID uint     `json:"consultorId"`
	Avisos      []string `json:"avisos,omitempty"`
}

func (t *Teardown) RemoverConsultor(id uint) (*RelatorioTeardown, error) {
	rel := &RelatorioTeardown{ConsultorID: id}

	if err := t.Comissoes.DeletarDoUsuario(id); err != nil {
		t.avisar(rel, "comissões não removidas: %v", err)
	}
	if err := t.Vinculos.DeletarDoUsuario(id); err != nil {
		t.avisar(rel, "vínculos não removidos: %v", err)
	}
	if err := t.Hierarquia.Remover(id); err != nil {
		t.avisar(rel, "aresta de hierarquia não removida: %v", err)
	}
	if err := t.Consultores.Deletar(t.DB, id); err != nil {
		return rel, fmt.Errorf("remover consultor: %w", err)
	}

	return rel, nil
}

func (t *Teardown) avisar(rel *RelatorioTeardown, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("teardown do consultor %d: %s", rel.ConsultorID, msg)
	rel.Avisos = append(rel.Avisos, msg)
}
