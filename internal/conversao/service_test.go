package conversao

import (
	"errors"
	"testing"
	"time"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

// ---- fakes em memória ----

type fakeLeadStore struct {
	leads       map[uint]*lead.Lead
	updateErr   error
	atualizados int
}

func (f *fakeLeadStore) FindByID(id uint) (*lead.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, errors.New("lead não encontrado")
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeadStore) Update(l *lead.Lead) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *l
	f.leads[l.ID] = &cp
	f.atualizados++
	return nil
}

func (f *fakeLeadStore) ArcadasConvertidas(consultores []uint, codigo string) (int, error) {
	total := 0
	for _, l := range f.leads {
		if l.Status != lead.StatusConvertido {
			continue
		}
		if codigo != "" && l.EstabelecimentoCodigo != codigo {
			continue
		}
		for _, c := range consultores {
			if l.IndicadoPor == c {
				total += l.Arcadas()
			}
		}
	}
	return total, nil
}

type fakeComissaoStore struct {
	criadas     []comissao.Comissao
	falharTipos map[string]bool
}

func (f *fakeComissaoStore) Create(c *comissao.Comissao) error {
	if f.falharTipos[c.Tipo] && c.Marco == 0 && !c.BonusCadencia {
		return errors.New("insert recusado")
	}
	c.ID = uint(len(f.criadas) + 1)
	f.criadas = append(f.criadas, *c)
	return nil
}

func (f *fakeComissaoStore) MarcoJaEmitido(gerenteID uint, codigo string, marco int) (bool, error) {
	for _, c := range f.criadas {
		if c.UsuarioID == gerenteID && c.EstabelecimentoCodigo == codigo && c.Marco == marco {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeComissaoStore) doTipo(tipo string) []comissao.Comissao {
	var out []comissao.Comissao
	for _, c := range f.criadas {
		if c.Tipo == tipo {
			out = append(out, c)
		}
	}
	return out
}

type fakeConfigStore struct {
	configs map[string]estabelecimento.ConfiguracaoComissao
}

func (f *fakeConfigStore) BuscarConfiguracao(clinicaID uint, codigo string) (estabelecimento.ConfiguracaoComissao, error) {
	if cfg, ok := f.configs[codigo]; ok {
		return cfg, nil
	}
	return estabelecimento.ConfiguracaoPadrao(clinicaID, codigo), nil
}

type fakeHierarquiaStore struct {
	gerenteDe map[uint]uint
}

func (f *fakeHierarquiaStore) GerenteDoConsultor(consultorID uint) (uint, error) {
	return f.gerenteDe[consultorID], nil
}

func (f *fakeHierarquiaStore) EquipeDoGerente(gerenteID uint) ([]uint, error) {
	var equipe []uint
	for consultor, gerente := range f.gerenteDe {
		if gerente == gerenteID {
			equipe = append(equipe, consultor)
		}
	}
	return equipe, nil
}

type fakeVinculoStore struct {
	ativos map[uint]string
}

func (f *fakeVinculoStore) EstabelecimentoAtivoDoUsuario(usuarioID uint) (string, error) {
	return f.ativos[usuarioID], nil
}

type cenario struct {
	leads     *fakeLeadStore
	comissoes *fakeComissaoStore
	service   *Service
}

func novoCenario() *cenario {
	leads := &fakeLeadStore{leads: map[uint]*lead.Lead{
		1: {ID: 1, ClinicaID: 10, Nome: "Paciente A", Status: lead.StatusNovo, IndicadoPor: 100, EstabelecimentoCodigo: "EST-01"},
	}}
	comissoes := &fakeComissaoStore{falharTipos: map[string]bool{}}
	svc := &Service{
		Leads:     leads,
		Comissoes: comissoes,
		Configuracoes: &fakeConfigStore{configs: map[string]estabelecimento.ConfiguracaoComissao{
			"EST-01": estabelecimento.ConfiguracaoPadrao(10, "EST-01"),
		}},
		Hierarquia: &fakeHierarquiaStore{gerenteDe: map[uint]uint{100: 500}},
		Vinculos:   &fakeVinculoStore{ativos: map[uint]string{100: "EST-01"}},
		Agora:      func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
	return &cenario{leads: leads, comissoes: comissoes, service: svc}
}

// ---- testes ----

func TestConverter(t *testing.T) {
	t.Run("emite comissão do consultor e do gerente", func(t *testing.T) {
		c := novoCenario()

		res, err := c.service.Converter(10, 1, 3)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}

		if res.ComissaoConsultor == nil || res.ComissaoConsultor.Valor != 2250 {
			t.Fatalf("comissão do consultor esperada 2250, veio %+v", res.ComissaoConsultor)
		}
		if res.ComissaoConsultor.Status != comissao.StatusPendente {
			t.Errorf("status esperado pendente, veio %s", res.ComissaoConsultor.Status)
		}
		if res.ComissaoConsultor.ArcadasVendidas != 3 || res.ComissaoConsultor.ValorPorArcada != 750 {
			t.Errorf("snapshot de arcadas/taxa incorreto: %+v", res.ComissaoConsultor)
		}

		if res.ComissaoGerente == nil || res.ComissaoGerente.Valor != 2250 {
			t.Fatalf("comissão do gerente esperada 2250, veio %+v", res.ComissaoGerente)
		}
		if res.ComissaoGerente.UsuarioID != 500 {
			t.Errorf("beneficiário do gerente esperado 500, veio %d", res.ComissaoGerente.UsuarioID)
		}

		atualizado := c.leads.leads[1]
		if atualizado.Status != lead.StatusConvertido {
			t.Errorf("lead deveria estar convertido, está %s", atualizado.Status)
		}
		if atualizado.ArcadasVendidas == nil || *atualizado.ArcadasVendidas != 3 {
			t.Errorf("arcadas vendidas esperadas 3, veio %v", atualizado.ArcadasVendidas)
		}
		if atualizado.ConvertidoEm == nil {
			t.Error("convertido_em deveria estar preenchido")
		}
	})

	t.Run("bônus de gerente desativado não emite comissão de gerente", func(t *testing.T) {
		c := novoCenario()
		cfg := estabelecimento.ConfiguracaoPadrao(10, "EST-01")
		cfg.BonusGerenteAtivo = false
		c.service.Configuracoes = &fakeConfigStore{configs: map[string]estabelecimento.ConfiguracaoComissao{"EST-01": cfg}}

		res, err := c.service.Converter(10, 1, 3)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.ComissaoConsultor.Valor != 2250 {
			t.Errorf("comissão do consultor esperada 2250, veio %f", res.ComissaoConsultor.Valor)
		}
		if res.ComissaoGerente != nil {
			t.Errorf("nenhuma comissão de gerente esperada, veio %+v", res.ComissaoGerente)
		}
		if got := len(c.comissoes.doTipo(comissao.TipoGerente)); got != 0 {
			t.Errorf("zero comissões de gerente esperadas, veio %d", got)
		}
	})

	t.Run("consultor sem gerente não gera comissão de gerente", func(t *testing.T) {
		c := novoCenario()
		c.service.Hierarquia = &fakeHierarquiaStore{gerenteDe: map[uint]uint{}}

		res, err := c.service.Converter(10, 1, 2)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.ComissaoGerente != nil || len(c.comissoes.doTipo(comissao.TipoGerente)) != 0 {
			t.Error("consultor sem gerente não deveria gerar comissão de gerente")
		}
	})

	t.Run("uma arcada aplica a taxa uma vez", func(t *testing.T) {
		c := novoCenario()

		res, err := c.service.Converter(10, 1, 1)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.ComissaoConsultor.Valor != 750 {
			t.Errorf("comissão esperada 750, veio %f", res.ComissaoConsultor.Valor)
		}
	})

	t.Run("arcadas inválidas abortam antes de qualquer escrita", func(t *testing.T) {
		c := novoCenario()

		if _, err := c.service.Converter(10, 1, 0); !errors.Is(err, ErrArcadasInvalidas) {
			t.Fatalf("esperado ErrArcadasInvalidas, veio %v", err)
		}
		if c.leads.atualizados != 0 || len(c.comissoes.criadas) != 0 {
			t.Error("nenhuma escrita deveria ter acontecido")
		}
	})

	t.Run("lead já convertido é rejeitado", func(t *testing.T) {
		c := novoCenario()
		tres := 3
		agora := time.Now()
		c.leads.leads[1].Status = lead.StatusConvertido
		c.leads.leads[1].ArcadasVendidas = &tres
		c.leads.leads[1].ConvertidoEm = &agora

		if _, err := c.service.Converter(10, 1, 2); !errors.Is(err, ErrLeadJaConvertido) {
			t.Fatalf("esperado ErrLeadJaConvertido, veio %v", err)
		}
		if len(c.comissoes.criadas) != 0 {
			t.Error("reconversão não pode emitir comissões")
		}
	})

	t.Run("lead de outra clínica é rejeitado", func(t *testing.T) {
		c := novoCenario()

		if _, err := c.service.Converter(99, 1, 2); !errors.Is(err, ErrLeadDeOutraClinica) {
			t.Fatalf("esperado ErrLeadDeOutraClinica, veio %v", err)
		}
	})

	t.Run("estabelecimento vem do vínculo ativo quando o lead não tem", func(t *testing.T) {
		c := novoCenario()
		c.leads.leads[1].EstabelecimentoCodigo = ""

		res, err := c.service.Converter(10, 1, 2)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.Lead.EstabelecimentoCodigo != "EST-01" {
			t.Errorf("estabelecimento esperado EST-01, veio %q", res.Lead.EstabelecimentoCodigo)
		}
	})

	t.Run("sem configuração própria aplica a padrão", func(t *testing.T) {
		c := novoCenario()
		c.leads.leads[1].EstabelecimentoCodigo = ""
		c.service.Vinculos = &fakeVinculoStore{ativos: map[uint]string{}}
		c.service.Configuracoes = &fakeConfigStore{configs: map[string]estabelecimento.ConfiguracaoComissao{}}

		res, err := c.service.Converter(10, 1, 2)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.ComissaoConsultor.Valor != 2*estabelecimento.PadraoValorPorArcada {
			t.Errorf("comissão com taxa padrão esperada, veio %f", res.ComissaoConsultor.Valor)
		}
		if res.Lead.EstabelecimentoCodigo != "" {
			t.Errorf("estabelecimento deveria seguir vazio, veio %q", res.Lead.EstabelecimentoCodigo)
		}
	})

	t.Run("taxa é congelada na emissão", func(t *testing.T) {
		c := novoCenario()
		cfg := estabelecimento.ConfiguracaoPadrao(10, "EST-01")
		cfg.ValorPorArcada = 900
		cfg.ValorPorArcadaGerente = 400
		c.service.Configuracoes = &fakeConfigStore{configs: map[string]estabelecimento.ConfiguracaoComissao{"EST-01": cfg}}

		res, err := c.service.Converter(10, 1, 2)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if res.ComissaoConsultor.Valor != 1800 || res.ComissaoConsultor.ValorPorArcada != 900 {
			t.Errorf("snapshot do consultor incorreto: %+v", res.ComissaoConsultor)
		}
		if res.ComissaoGerente.Valor != 800 || res.ComissaoGerente.ValorPorArcada != 400 {
			t.Errorf("snapshot do gerente incorreto: %+v", res.ComissaoGerente)
		}
	})

	t.Run("falha na comissão do gerente não desfaz a conversão", func(t *testing.T) {
		c := novoCenario()
		c.comissoes.falharTipos[comissao.TipoGerente] = true

		res, err := c.service.Converter(10, 1, 3)
		if err != nil {
			t.Fatalf("conversão deveria seguir válida, veio erro: %v", err)
		}
		if res.ComissaoConsultor == nil {
			t.Fatal("comissão do consultor deveria existir")
		}
		if res.ComissaoGerente != nil {
			t.Error("comissão do gerente não deveria existir")
		}
		if len(res.Avisos) == 0 {
			t.Error("a falha deveria virar aviso")
		}
		if c.leads.leads[1].Status != lead.StatusConvertido {
			t.Error("lead deveria permanecer convertido")
		}
	})
}

func TestConverterBonusCadencia(t *testing.T) {
	t.Run("cruzar a cadência emite o bônus fixo", func(t *testing.T) {
		c := novoCenario()
		c.service.BonusCadenciaAtivo = true
		// Consultor 100 já tem 6 arcadas convertidas em EST-01.
		seis := 6
		agora := time.Now()
		c.leads.leads[2] = &lead.Lead{
			ID: 2, ClinicaID: 10, Status: lead.StatusConvertido, IndicadoPor: 100,
			EstabelecimentoCodigo: "EST-01", ArcadasVendidas: &seis, ConvertidoEm: &agora,
		}

		res, err := c.service.Converter(10, 1, 1)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusConsultor) != 1 {
			t.Fatalf("um bônus de cadência esperado, veio %d", len(res.BonusConsultor))
		}
		b := res.BonusConsultor[0]
		if b.Valor != 750 || !b.BonusCadencia || b.Tipo != comissao.TipoConsultor {
			t.Errorf("bônus de cadência incorreto: %+v", b)
		}
	})

	t.Run("venda grande pode cruzar mais de uma cadência", func(t *testing.T) {
		c := novoCenario()
		c.service.BonusCadenciaAtivo = true
		cinco := 5
		agora := time.Now()
		c.leads.leads[2] = &lead.Lead{
			ID: 2, ClinicaID: 10, Status: lead.StatusConvertido, IndicadoPor: 100,
			EstabelecimentoCodigo: "EST-01", ArcadasVendidas: &cinco, ConvertidoEm: &agora,
		}

		// 5 acumuladas + 9 novas = 14: cruza 7 e 14.
		res, err := c.service.Converter(10, 1, 9)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusConsultor) != 2 {
			t.Fatalf("dois bônus de cadência esperados, veio %d", len(res.BonusConsultor))
		}
	})

	t.Run("desligado não emite nada", func(t *testing.T) {
		c := novoCenario()
		seis := 6
		agora := time.Now()
		c.leads.leads[2] = &lead.Lead{
			ID: 2, ClinicaID: 10, Status: lead.StatusConvertido, IndicadoPor: 100,
			EstabelecimentoCodigo: "EST-01", ArcadasVendidas: &seis, ConvertidoEm: &agora,
		}

		res, err := c.service.Converter(10, 1, 1)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusConsultor) != 0 {
			t.Errorf("nenhum bônus esperado com a chave desligada, veio %d", len(res.BonusConsultor))
		}
	})
}

func TestConverterBonusMarco(t *testing.T) {
	preparaEquipe := func(c *cenario, acumuladas int) {
		// Consultores 100 e 101 na equipe do gerente 500.
		c.service.Hierarquia = &fakeHierarquiaStore{gerenteDe: map[uint]uint{100: 500, 101: 500}}
		agora := time.Now()
		arc := acumuladas
		c.leads.leads[2] = &lead.Lead{
			ID: 2, ClinicaID: 10, Status: lead.StatusConvertido, IndicadoPor: 101,
			EstabelecimentoCodigo: "EST-01", ArcadasVendidas: &arc, ConvertidoEm: &agora,
		}
	}

	t.Run("cruzar 35 arcadas emite o bônus do marco uma única vez", func(t *testing.T) {
		c := novoCenario()
		c.service.MarcosAtivos = true
		preparaEquipe(c, 33)

		res, err := c.service.Converter(10, 1, 3)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusMarcos) != 1 {
			t.Fatalf("um bônus de marco esperado, veio %d", len(res.BonusMarcos))
		}
		b := res.BonusMarcos[0]
		if b.Marco != estabelecimento.Marco35 || b.Valor != estabelecimento.PadraoBonusGerente35 {
			t.Errorf("bônus do marco 35 incorreto: %+v", b)
		}
		if b.UsuarioID != 500 || b.Tipo != comissao.TipoGerente {
			t.Errorf("beneficiário do marco incorreto: %+v", b)
		}

		// Novo lead converte depois: o marco 35 não é reemitido.
		c.leads.leads[3] = &lead.Lead{ID: 3, ClinicaID: 10, Status: lead.StatusNovo, IndicadoPor: 100, EstabelecimentoCodigo: "EST-01"}
		res2, err := c.service.Converter(10, 3, 1)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res2.BonusMarcos) != 0 {
			t.Errorf("marco 35 não pode ser reemitido, veio %d bônus", len(res2.BonusMarcos))
		}
	})

	t.Run("venda grande pode cruzar dois marcos de uma vez", func(t *testing.T) {
		c := novoCenario()
		c.service.MarcosAtivos = true
		preparaEquipe(c, 34)

		res, err := c.service.Converter(10, 1, 20)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusMarcos) != 2 {
			t.Fatalf("bônus dos marcos 35 e 50 esperados, veio %d", len(res.BonusMarcos))
		}
		if res.BonusMarcos[0].Marco != estabelecimento.Marco35 || res.BonusMarcos[1].Marco != estabelecimento.Marco50 {
			t.Errorf("marcos incorretos: %+v", res.BonusMarcos)
		}
		if res.BonusMarcos[1].Valor != estabelecimento.PadraoBonusGerente50 {
			t.Errorf("valor do marco 50 incorreto: %f", res.BonusMarcos[1].Valor)
		}
	})

	t.Run("marcos desligados ou bônus de gerente inativo não emitem", func(t *testing.T) {
		c := novoCenario()
		preparaEquipe(c, 34)

		res, err := c.service.Converter(10, 1, 3)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(res.BonusMarcos) != 0 {
			t.Errorf("nenhum bônus esperado com a chave desligada, veio %d", len(res.BonusMarcos))
		}
	})
}
