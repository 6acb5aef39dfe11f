package estabelecimento

// Valores padrão aplicados quando o estabelecimento não tem configuração própria.
// Este é o ÚNICO lugar do sistema onde esses números existem; nenhum outro
// pacote deve repetir o literal 750.
const (
	PadraoValorPorArcada    = 750.0
	PadraoBonusACadaArcadas = 7
	PadraoBonusValor        = 750.0
	PadraoBonusGerente35    = 5000.0
	PadraoBonusGerente50    = 10000.0
	PadraoBonusGerente75    = 15000.0
)

// Marcos de arcadas acumuladas que disparam bônus de gerente.
const (
	Marco35 = 35
	Marco50 = 50
	Marco75 = 75
)

// ConfiguracaoPadrao monta a configuração default para um código de
// estabelecimento (possivelmente vazio, quando o lead não tem unidade definida).
func ConfiguracaoPadrao(clinicaID uint, codigo string) ConfiguracaoComissao {
	return ConfiguracaoComissao{
		ClinicaID:             clinicaID,
		EstabelecimentoCodigo: codigo,
		ValorPorArcada:        PadraoValorPorArcada,
		BonusACadaArcadas:     PadraoBonusACadaArcadas,
		BonusValor:            PadraoBonusValor,
		BonusGerenteAtivo:     true,
		ValorPorArcadaGerente: PadraoValorPorArcada,
		BonusGerente35:        PadraoBonusGerente35,
		BonusGerente50:        PadraoBonusGerente50,
		BonusGerente75:        PadraoBonusGerente75,
	}
}

// BonusDoMarco devolve o valor configurado para um marco (35, 50 ou 75).
func (c ConfiguracaoComissao) BonusDoMarco(marco int) float64 {
	switch marco {
	case Marco35:
		return c.BonusGerente35
	case Marco50:
		return c.BonusGerente50
	case Marco75:
		return c.BonusGerente75
	}
	return 0
}

// Marcos lista os marcos na ordem em que são atingidos.
func Marcos() []int {
	return []int{Marco35, Marco50, Marco75}
}
