// internal/conversao/service.go
package conversao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

// Erros de validação devolvidos antes de qualquer escrita.
var (
	ErrArcadasInvalidas   = errors.New("quantidade de arcadas deve ser no mínimo 1")
	ErrLeadJaConvertido   = errors.New("lead já convertido; ajuste deve ser feito por fluxo próprio")
	ErrLeadDeOutraClinica = errors.New("lead pertence a outra clínica")
)

// Stores colaboradores da conversão. Os repositories GORM dos pacotes de
// domínio satisfazem essas interfaces; os testes usam fakes em memória.
type LeadStore interface {
	FindByID(id uint) (*lead.Lead, error)
	Update(l *lead.Lead) error
	// ArcadasConvertidas soma as arcadas já convertidas de um conjunto de
	// consultores, opcionalmente restrita a um estabelecimento.
	ArcadasConvertidas(consultores []uint, estabelecimentoCodigo string) (int, error)
}

type ComissaoStore interface {
	Create(c *comissao.Comissao) error
	MarcoJaEmitido(gerenteID uint, estabelecimentoCodigo string, marco int) (bool, error)
}

type ConfiguracaoStore interface {
	BuscarConfiguracao(clinicaID uint, codigo string) (estabelecimento.ConfiguracaoComissao, error)
}

type HierarquiaStore interface {
	GerenteDoConsultor(consultorID uint) (uint, error)
	EquipeDoGerente(gerenteID uint) ([]uint, error)
}

type VinculoStore interface {
	EstabelecimentoAtivoDoUsuario(usuarioID uint) (string, error)
}

// Notificador recebe o alerta de marco atingido; nil desliga o aviso.
type Notificador interface {
	AlertaMarcoAtingido(gerenteID uint, estabelecimentoCodigo string, marco int)
}

// Service concentra a regra de conversão de lead e emissão de comissões, que
// antes vivia espalhada (e divergente) entre as telas do painel.
type Service struct {
	Leads         LeadStore
	Comissoes     ComissaoStore
	Configuracoes ConfiguracaoStore
	Hierarquia    HierarquiaStore
	Vinculos      VinculoStore
	Notificador   Notificador

	// Chaves das funcionalidades novas: o bônus de cadência do consultor e os
	// marcos do gerente existiam só como configuração no sistema antigo.
	BonusCadenciaAtivo bool
	MarcosAtivos       bool

	Agora func() time.Time
}

// Resultado reúne tudo que a conversão produziu.
type Resultado struct {
	Lead              *lead.Lead          `json:"lead"`
	ComissaoConsultor *comissao.Comissao  `json:"comissaoConsultor"`
	ComissaoGerente   *comissao.Comissao  `json:"comissaoGerente,omitempty"`
	BonusConsultor    []comissao.Comissao `json:"bonusConsultor,omitempty"`
	BonusMarcos       []comissao.Comissao `json:"bonusMarcos,omitempty"`
	// Falhas não-fatais (comissão de gerente, bônus): a conversão segue válida.
	Avisos []string `json:"avisos,omitempty"`
}

// Converter efetiva a venda de um lead: atualiza o lead, emite a comissão do
// consultor e, havendo gerente na hierarquia, a comissão base do gerente e os
// bônus de marco. A atualização do lead e a comissão do consultor são o núcleo
// da operação; tudo que envolve o gerente é best-effort e nunca desfaz o que
// já foi gravado.
func (s *Service) Converter(clinicaID, leadID uint, arcadas int) (*Resultado, error) {
	if arcadas < 1 {
		return nil, ErrArcadasInvalidas
	}

	l, err := s.Leads.FindByID(leadID)
	if err != nil {
		return nil, fmt.Errorf("buscar lead: %w", err)
	}
	if clinicaID != 0 && l.ClinicaID != clinicaID {
		return nil, ErrLeadDeOutraClinica
	}
	if l.Status == lead.StatusConvertido {
		return nil, ErrLeadJaConvertido
	}

	// Resolve o estabelecimento: mantém o do lead se houver; senão adota o
	// vínculo ativo do consultor que indicou. Sem vínculo, segue vazio e a
	// configuração padrão se aplica.
	codigo := l.EstabelecimentoCodigo
	if codigo == "" {
		codigo, err = s.Vinculos.EstabelecimentoAtivoDoUsuario(l.IndicadoPor)
		if err != nil {
			return nil, fmt.Errorf("resolver estabelecimento do consultor: %w", err)
		}
	}

	cfg, err := s.Configuracoes.BuscarConfiguracao(l.ClinicaID, codigo)
	if err != nil {
		return nil, fmt.Errorf("buscar configuração de comissão: %w", err)
	}

	// Acumulados ANTES da conversão, para detectar cruzamento de cadência e marco.
	var antesConsultor, antesEquipe int
	var gerenteID uint
	if s.BonusCadenciaAtivo {
		antesConsultor, err = s.Leads.ArcadasConvertidas([]uint{l.IndicadoPor}, codigo)
		if err != nil {
			return nil, fmt.Errorf("somar arcadas do consultor: %w", err)
		}
	}
	gerenteID, err = s.Hierarquia.GerenteDoConsultor(l.IndicadoPor)
	if err != nil {
		return nil, fmt.Errorf("resolver gerente: %w", err)
	}
	if gerenteID != 0 && s.MarcosAtivos && cfg.BonusGerenteAtivo {
		equipe, err := s.Hierarquia.EquipeDoGerente(gerenteID)
		if err != nil {
			return nil, fmt.Errorf("resolver equipe do gerente: %w", err)
		}
		antesEquipe, err = s.Leads.ArcadasConvertidas(equipe, codigo)
		if err != nil {
			return nil, fmt.Errorf("somar arcadas da equipe: %w", err)
		}
	}

	// Efetiva a conversão do lead.
	agora := s.agora()
	l.Status = lead.StatusConvertido
	l.ArcadasVendidas = &arcadas
	l.EstabelecimentoCodigo = codigo
	l.ConvertidoEm = &agora
	if err := s.Leads.Update(l); err != nil {
		return nil, fmt.Errorf("atualizar lead: %w", err)
	}

	// Comissão do consultor, com a taxa congelada na emissão.
	cc := comissao.Comissao{
		ClinicaID:             l.ClinicaID,
		LeadID:                l.ID,
		UsuarioID:             l.IndicadoPor,
		EstabelecimentoCodigo: codigo,
		Tipo:                  comissao.TipoConsultor,
		Valor:                 float64(arcadas) * cfg.ValorPorArcada,
		ArcadasVendidas:       arcadas,
		ValorPorArcada:        cfg.ValorPorArcada,
		Status:                comissao.StatusPendente,
	}
	if err := s.Comissoes.Create(&cc); err != nil {
		return nil, fmt.Errorf("criar comissão do consultor: %w", err)
	}

	res := &Resultado{Lead: l, ComissaoConsultor: &cc}

	// Bônus de cadência do consultor: um bônus fixo a cada N arcadas acumuladas.
	if s.BonusCadenciaAtivo && cfg.BonusACadaArcadas > 0 && cfg.BonusValor > 0 {
		depois := antesConsultor + arcadas
		for i := antesConsultor/cfg.BonusACadaArcadas + 1; i <= depois/cfg.BonusACadaArcadas; i++ {
			b := comissao.Comissao{
				ClinicaID:             l.ClinicaID,
				LeadID:                l.ID,
				UsuarioID:             l.IndicadoPor,
				EstabelecimentoCodigo: codigo,
				Tipo:                  comissao.TipoConsultor,
				Valor:                 cfg.BonusValor,
				BonusCadencia:         true,
				Status:                comissao.StatusPendente,
			}
			if err := s.Comissoes.Create(&b); err != nil {
				s.avisar(res, "bônus de cadência do consultor não emitido: %v", err)
				continue
			}
			res.BonusConsultor = append(res.BonusConsultor, b)
		}
	}

	// Sem gerente na hierarquia, nada a emitir; isso não é erro.
	if gerenteID == 0 {
		return res, nil
	}

	// Comissão base do gerente, condicionada à chave do estabelecimento.
	if cfg.BonusGerenteAtivo {
		cg := comissao.Comissao{
			ClinicaID:             l.ClinicaID,
			LeadID:                l.ID,
			UsuarioID:             gerenteID,
			EstabelecimentoCodigo: codigo,
			Tipo:                  comissao.TipoGerente,
			Valor:                 float64(arcadas) * cfg.ValorPorArcadaGerente,
			ArcadasVendidas:       arcadas,
			ValorPorArcada:        cfg.ValorPorArcadaGerente,
			Status:                comissao.StatusPendente,
		}
		if err := s.Comissoes.Create(&cg); err != nil {
			s.avisar(res, "comissão do gerente não emitida: %v", err)
		} else {
			res.ComissaoGerente = &cg
		}
	}

	// Bônus de marco: um por limiar cruzado, emitido uma única vez.
	if s.MarcosAtivos && cfg.BonusGerenteAtivo {
		depoisEquipe := antesEquipe + arcadas
		for _, marco := range estabelecimento.Marcos() {
			if antesEquipe >= marco || depoisEquipe < marco {
				continue
			}
			emitido, err := s.Comissoes.MarcoJaEmitido(gerenteID, codigo, marco)
			if err != nil {
				s.avisar(res, "verificação do marco %d falhou: %v", marco, err)
				continue
			}
			if emitido || cfg.BonusDoMarco(marco) <= 0 {
				continue
			}
			b := comissao.Comissao{
				ClinicaID:             l.ClinicaID,
				LeadID:                l.ID,
				UsuarioID:             gerenteID,
				EstabelecimentoCodigo: codigo,
				Tipo:                  comissao.TipoGerente,
				Valor:                 cfg.BonusDoMarco(marco),
				Marco:                 marco,
				Status:                comissao.StatusPendente,
			}
			if err := s.Comissoes.Create(&b); err != nil {
				s.avisar(res, "bônus do marco %d não emitido: %v", marco, err)
				continue
			}
			res.BonusMarcos = append(res.BonusMarcos, b)
			if s.Notificador != nil {
				s.Notificador.AlertaMarcoAtingido(gerenteID, codigo, marco)
			}
		}
	}

	return res, nil
}

func (s *Service) agora() time.Time {
	if s.Agora != nil {
		return s.Agora()
	}
	return time.Now()
}

func (s *Service) avisar(res *Resultado, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("conversão do lead %d: %s", res.Lead.ID, msg)
	res.Avisos = append(res.Avisos, msg)
}
