package hierarquia

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Handler gerencia rotas de equipe (gerente ↔ consultores)
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type adicionarMembroRequest struct {
	ConsultorID uint `json:"consultorId"`
}

// POST /gerentes/{id}/equipe
func (h *Handler) AdicionarMembro(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	gerenteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de gerente inválido", http.StatusBadRequest)
		return
	}
	if p.Perfil != auth.PerfilAdmin && !(p.Perfil == auth.PerfilGerente && uint(gerenteID) == p.ID) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req adicionarMembroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConsultorID == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	edge := Hierarquia{
		ClinicaID:   p.ClinicaID,
		GerenteID:   uint(gerenteID),
		ConsultorID: req.ConsultorID,
	}
	if err := h.Repo.Adicionar(&edge); err != nil {
		http.Error(w, "Erro ao adicionar consultor à equipe (já possui gerente?)", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(edge)
}

// GET /gerentes/{id}/equipe
func (h *Handler) ListarEquipe(w http.ResponseWriter, r *http.Request) {
	gerenteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de gerente inválido", http.StatusBadRequest)
		return
	}

	ids, err := h.Repo.EquipeDoGerente(uint(gerenteID))
	if err != nil {
		http.Error(w, "Erro ao listar equipe", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]uint{"consultores": ids})
}

// DELETE /gerentes/{id}/equipe/{cid}
func (h *Handler) RemoverMembro(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	gerenteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de gerente inválido", http.StatusBadRequest)
		return
	}
	if p.Perfil != auth.PerfilAdmin && !(p.Perfil == auth.PerfilGerente && uint(gerenteID) == p.ID) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	consultorID, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID de consultor inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Remover(uint(consultorID)); err != nil {
		http.Error(w, "Erro ao remover consultor da equipe", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
