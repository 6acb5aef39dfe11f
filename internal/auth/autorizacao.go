package auth

import "context"

// Perfis de acesso do painel.
const (
	PerfilAdmin        = "admin"
	PerfilGerente      = "gerente"
	PerfilConsultor    = "consultor"
	PerfilVisualizador = "visualizador"
)

// Principal identifica quem está executando a operação.
type Principal struct {
	ID        uint
	ClinicaID uint
	Perfil    string
}

// PrincipalDoContexto monta o Principal a partir das claims injetadas pelo middleware.
func PrincipalDoContexto(ctx context.Context) Principal {
	p := Principal{}
	if v, ok := ctx.Value(CtxUserID).(uint); ok {
		p.ID = v
	}
	if v, ok := ctx.Value(CtxClinicaID).(uint); ok {
		p.ClinicaID = v
	}
	if v, ok := ctx.Value(CtxPerfil).(string); ok {
		p.Perfil = v
	}
	return p
}

// Recurso descreve a linha que o Principal quer acessar. EquipeDoGerente lista os
// consultores do gerente quando o perfil é gerente; fica vazio nos demais casos.
type Recurso struct {
	ClinicaID   uint
	ConsultorID uint
}

// PodeVer centraliza o filtro de visibilidade que antes se repetia página a página:
// admin e visualizador enxergam toda a clínica, gerente enxerga a própria equipe,
// consultor enxerga apenas as próprias linhas.
func PodeVer(p Principal, r Recurso, equipeDoGerente []uint) bool {
	if p.ClinicaID != r.ClinicaID {
		return false
	}
	switch p.Perfil {
	case PerfilAdmin, PerfilVisualizador:
		return true
	case PerfilGerente:
		if r.ConsultorID == 0 {
			return false
		}
		for _, id := range equipeDoGerente {
			if id == r.ConsultorID {
				return true
			}
		}
		return false
	case PerfilConsultor:
		return r.ConsultorID == p.ID
	}
	return false
}

// PodeMutar é PodeVer sem o perfil somente-leitura.
func PodeMutar(p Principal, r Recurso, equipeDoGerente []uint) bool {
	if p.Perfil == PerfilVisualizador {
		return false
	}
	return PodeVer(p, r, equipeDoGerente)
}
