package vinculo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Handler gerencia rotas de vínculo usuário↔estabelecimento
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type criarVinculoRequest struct {
	EstabelecimentoCodigo string `json:"estabelecimentoCodigo"`
}

// POST /usuarios/{id}/vinculos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	usuarioID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	var req criarVinculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EstabelecimentoCodigo == "" {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v := UsuarioEstabelecimento{
		ClinicaID:             p.ClinicaID,
		UsuarioID:             uint(usuarioID),
		EstabelecimentoCodigo: req.EstabelecimentoCodigo,
		Status:                StatusAtivo,
	}
	if err := h.Repo.Create(&v); err != nil {
		http.Error(w, "Erro ao criar vínculo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

// GET /usuarios/{id}/vinculos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	codigos, err := h.Repo.ListarAtivosDoUsuario(uint(usuarioID))
	if err != nil {
		http.Error(w, "Erro ao listar vínculos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"estabelecimentos": codigos})
}

// DELETE /usuarios/{id}/vinculos/{codigo}
// Desativa o vínculo, preservando o histórico.
func (h *Handler) Desativar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	usuarioID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "ID de usuário inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Desativar(uint(usuarioID), vars["codigo"]); err != nil {
		http.Error(w, "Erro ao desativar vínculo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
