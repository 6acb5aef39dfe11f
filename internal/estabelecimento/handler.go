package estabelecimento

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Handler gerencia rotas de estabelecimento e da configuração de comissão
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /estabelecimentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
		return
	}

	var e Estabelecimento
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if e.Codigo == "" {
		http.Error(w, "Código do estabelecimento é obrigatório", http.StatusBadRequest)
		return
	}
	e.ClinicaID = p.ClinicaID

	if err := h.Repo.Create(&e); err != nil {
		http.Error(w, "Erro ao criar estabelecimento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// GET /estabelecimentos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	list, err := h.Repo.ListByClinica(p.ClinicaID)
	if err != nil {
		http.Error(w, "Erro ao listar estabelecimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /estabelecimentos/{codigo}
func (h *Handler) BuscarPorCodigo(w http.ResponseWriter, r *http.Request) {
	codigo := mux.Vars(r)["codigo"]
	e, err := h.Repo.FindByCodigo(codigo)
	if err != nil {
		http.Error(w, "Estabelecimento não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// GET /estabelecimentos/{codigo}/configuracao
// Sempre responde 200: sem linha própria devolve a configuração padrão.
func (h *Handler) BuscarConfiguracao(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	codigo := mux.Vars(r)["codigo"]

	cfg, err := h.Repo.BuscarConfiguracao(p.ClinicaID, codigo)
	if err != nil {
		http.Error(w, "Erro ao buscar configuração", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// PUT /estabelecimentos/{codigo}/configuracao
func (h *Handler) SalvarConfiguracao(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
		return
	}
	codigo := mux.Vars(r)["codigo"]

	var cfg ConfiguracaoComissao
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	cfg.ClinicaID = p.ClinicaID
	cfg.EstabelecimentoCodigo = codigo

	if err := h.Repo.SalvarConfiguracao(&cfg); err != nil {
		http.Error(w, "Erro ao salvar configuração", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}
