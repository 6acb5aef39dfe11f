package estabelecimento

import "testing"

func TestConfiguracaoPadrao(t *testing.T) {
	cfg := ConfiguracaoPadrao(7, "EST-01")

	if cfg.ClinicaID != 7 || cfg.EstabelecimentoCodigo != "EST-01" {
		t.Errorf("identificação incorreta: %+v", cfg)
	}
	if cfg.ValorPorArcada != PadraoValorPorArcada || cfg.ValorPorArcadaGerente != PadraoValorPorArcada {
		t.Errorf("taxas padrão incorretas: %+v", cfg)
	}
	if !cfg.BonusGerenteAtivo {
		t.Error("bônus de gerente deveria vir ativo por padrão")
	}
	if cfg.BonusACadaArcadas != PadraoBonusACadaArcadas || cfg.BonusValor != PadraoBonusValor {
		t.Errorf("cadência padrão incorreta: %+v", cfg)
	}
}

func TestBonusDoMarco(t *testing.T) {
	cfg := ConfiguracaoPadrao(1, "EST-01")

	casos := map[int]float64{
		Marco35: PadraoBonusGerente35,
		Marco50: PadraoBonusGerente50,
		Marco75: PadraoBonusGerente75,
		40:      0,
	}
	for marco, esperado := range casos {
		if got := cfg.BonusDoMarco(marco); got != esperado {
			t.Errorf("marco %d: esperado %f, veio %f", marco, esperado, got)
		}
	}
}

func TestMarcosEmOrdem(t *testing.T) {
	marcos := Marcos()
	for i := 1; i < len(marcos); i++ {
		if marcos[i] <= marcos[i-1] {
			t.Fatalf("marcos fora de ordem: %v", marcos)
		}
	}
}
