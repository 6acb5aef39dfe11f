package relatorio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/hierarquia"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

// Tempo de vida do cache dos painéis.
const cacheTTL = 60 * time.Second

// Handler serve os painéis e relatórios agregados. Cache é opcional: com
// Cache nil toda requisição recalcula direto do banco.
type Handler struct {
	Leads            *lead.Repository
	Comissoes        *comissao.Repository
	Estabelecimentos *estabelecimento.Repository
	Hierarquia       *hierarquia.Repository
	Cache            *redis.Client
}

func NewHandler(
	leads *lead.Repository,
	comissoes *comissao.Repository,
	estabelecimentos *estabelecimento.Repository,
	hier *hierarquia.Repository,
	cache *redis.Client,
) *Handler {
	return &Handler{
		Leads:            leads,
		Comissoes:        comissoes,
		Estabelecimentos: estabelecimentos,
		Hierarquia:       hier,
		Cache:            cache,
	}
}

type painelDTO struct {
	Estatisticas              Estatisticas       `json:"estatisticas"`
	ReceitaPorEstabelecimento map[string]float64 `json:"receitaPorEstabelecimento"`
	ReceitaTotal              float64            `json:"receitaTotal"`
}

// GET /dashboard
// Escopo por perfil: consultor vê as próprias linhas, gerente a equipe,
// admin e visualizador a clínica inteira.
func (h *Handler) Painel(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	chave := fmt.Sprintf("relatorio:painel:%d:%s:%d", p.ClinicaID, p.Perfil, p.ID)
	if h.responderDoCache(r.Context(), w, chave) {
		return
	}

	fLead := lead.Filtro{ClinicaID: p.ClinicaID}
	fCom := comissao.Filtro{ClinicaID: p.ClinicaID}
	switch p.Perfil {
	case auth.PerfilConsultor:
		fLead.ConsultorID = p.ID
		fCom.UsuarioID = p.ID
	case auth.PerfilGerente:
		equipe, err := h.Hierarquia.EquipeDoGerente(p.ID)
		if err != nil {
			http.Error(w, "Erro ao resolver equipe", http.StatusInternalServerError)
			return
		}
		fLead.Consultores = equipe
		fCom.UsuarioID = p.ID
		if len(equipe) == 0 {
			fLead.ConsultorID = p.ID // gerente sem equipe não vê leads de terceiros
		}
	}

	dto, err := h.montarPainel(fLead, fCom)
	if err != nil {
		http.Error(w, "Erro ao montar painel", http.StatusInternalServerError)
		return
	}
	h.responderEGuardar(r.Context(), w, chave, dto)
}

// GET /dashboard/tendencia?meses=6
func (h *Handler) Tendencia(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	meses := 6
	if m, err := strconv.Atoi(r.URL.Query().Get("meses")); err == nil && m >= 1 {
		meses = m
	}
	if meses > MaxMeses {
		meses = MaxMeses
	}

	chave := fmt.Sprintf("relatorio:tendencia:%d:%s:%d:%d", p.ClinicaID, p.Perfil, p.ID, meses)
	if h.responderDoCache(r.Context(), w, chave) {
		return
	}

	fLead := lead.Filtro{ClinicaID: p.ClinicaID}
	fCom := comissao.Filtro{ClinicaID: p.ClinicaID}
	if p.Perfil == auth.PerfilConsultor {
		fLead.ConsultorID = p.ID
		fCom.UsuarioID = p.ID
	}

	leads, err := h.Leads.Listar(fLead)
	if err != nil {
		http.Error(w, "Erro ao listar leads", http.StatusInternalServerError)
		return
	}
	comissoes, err := h.Comissoes.Listar(fCom)
	if err != nil {
		http.Error(w, "Erro ao listar comissões", http.StatusInternalServerError)
		return
	}

	pontos := TendenciaMensal(leads, comissoes, meses, time.Now())
	h.responderEGuardar(r.Context(), w, chave, pontos)
}

// GET /estabelecimentos/{codigo}/estatisticas
func (h *Handler) EstatisticasEstabelecimento(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	codigo := mux.Vars(r)["codigo"]

	chave := fmt.Sprintf("relatorio:estab:%d:%s", p.ClinicaID, codigo)
	if h.responderDoCache(r.Context(), w, chave) {
		return
	}

	dto, err := h.montarPainel(
		lead.Filtro{ClinicaID: p.ClinicaID, EstabelecimentoCodigo: codigo},
		comissao.Filtro{ClinicaID: p.ClinicaID, EstabelecimentoCodigo: codigo},
	)
	if err != nil {
		http.Error(w, "Erro ao montar estatísticas", http.StatusInternalServerError)
		return
	}
	h.responderEGuardar(r.Context(), w, chave, dto)
}

// GET /gerentes/{id}/estatisticas
func (h *Handler) EstatisticasGerente(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de gerente inválido", http.StatusBadRequest)
		return
	}
	gerenteID := uint(id)
	if p.Perfil == auth.PerfilGerente && gerenteID != p.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	equipe, err := h.Hierarquia.EquipeDoGerente(gerenteID)
	if err != nil {
		http.Error(w, "Erro ao resolver equipe", http.StatusInternalServerError)
		return
	}

	fLead := lead.Filtro{ClinicaID: p.ClinicaID, Consultores: equipe}
	if len(equipe) == 0 {
		fLead.ConsultorID = gerenteID
	}
	dto, err := h.montarPainel(fLead, comissao.Filtro{ClinicaID: p.ClinicaID, UsuarioID: gerenteID})
	if err != nil {
		http.Error(w, "Erro ao montar estatísticas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto)
}

// GET /consultores/{id}/estatisticas
func (h *Handler) EstatisticasConsultor(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de consultor inválido", http.StatusBadRequest)
		return
	}
	consultorID := uint(id)
	if p.Perfil == auth.PerfilConsultor && consultorID != p.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	dto, err := h.montarPainel(
		lead.Filtro{ClinicaID: p.ClinicaID, ConsultorID: consultorID},
		comissao.Filtro{ClinicaID: p.ClinicaID, UsuarioID: consultorID},
	)
	if err != nil {
		http.Error(w, "Erro ao montar estatísticas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto)
}

func (h *Handler) montarPainel(fLead lead.Filtro, fCom comissao.Filtro) (*painelDTO, error) {
	leads, err := h.Leads.Listar(fLead)
	if err != nil {
		return nil, err
	}
	comissoes, err := h.Comissoes.Listar(fCom)
	if err != nil {
		return nil, err
	}

	// Uma única leitura das configurações da clínica, em vez de N+1 por lead.
	cfgs := make(map[string]estabelecimento.ConfiguracaoComissao)
	if fLead.ClinicaID != 0 {
		estabs, err := h.Estabelecimentos.ListByClinica(fLead.ClinicaID)
		if err != nil {
			return nil, err
		}
		for _, e := range estabs {
			if e.Configuracao != nil {
				cfgs[e.Codigo] = *e.Configuracao
			}
		}
	}

	receita := ReceitaPorEstabelecimento(leads, cfgs)
	var total float64
	for _, v := range receita {
		total += v
	}
	return &painelDTO{
		Estatisticas:              Agregar(leads, comissoes),
		ReceitaPorEstabelecimento: receita,
		ReceitaTotal:              total,
	}, nil
}

func (h *Handler) responderDoCache(ctx context.Context, w http.ResponseWriter, chave string) bool {
	if h.Cache == nil {
		return false
	}
	raw, err := h.Cache.Get(ctx, chave).Bytes()
	if err != nil {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
	return true
}

func (h *Handler) responderEGuardar(ctx context.Context, w http.ResponseWriter, chave string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Erro ao serializar resposta", http.StatusInternalServerError)
		return
	}
	if h.Cache != nil {
		h.Cache.Set(ctx, chave, raw, cacheTTL)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}
