package lead

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
	"github.com/OdontoPrime/api-indicacoes/internal/hierarquia"
)

// Handler gerencia rotas de leads
type Handler struct {
	Repo       *Repository
	Hierarquia *hierarquia.Repository
	validate   *validator.Validate
}

func NewHandler(repo *Repository, hier *hierarquia.Repository) *Handler {
	return &Handler{
		Repo:       repo,
		Hierarquia: hier,
		validate:   validator.New(),
	}
}

// POST /leads
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil == auth.PerfilVisualizador {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dto CriarLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Consultor só indica em nome próprio.
	if p.Perfil == auth.PerfilConsultor {
		dto.IndicadoPor = p.ID
	}

	l := Lead{
		Codigo:                uuid.NewString(),
		ClinicaID:             p.ClinicaID,
		Nome:                  dto.Nome,
		Telefone:              dto.Telefone,
		Email:                 dto.Email,
		Status:                StatusNovo,
		IndicadoPor:           dto.IndicadoPor,
		EstabelecimentoCodigo: dto.EstabelecimentoCodigo,
	}
	if err := h.Repo.Create(&l); err != nil {
		http.Error(w, "Erro ao criar lead", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

// GET /leads?status=&estabelecimento=&de=&ate=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	f := Filtro{
		ClinicaID:             p.ClinicaID,
		Status:                r.URL.Query().Get("status"),
		EstabelecimentoCodigo: r.URL.Query().Get("estabelecimento"),
	}
	if de := r.URL.Query().Get("de"); de != "" {
		if t, err := time.Parse("2006-01-02", de); err == nil {
			f.De = &t
		}
	}
	if ate := r.URL.Query().Get("ate"); ate != "" {
		if t, err := time.Parse("2006-01-02", ate); err == nil {
			f.Ate = &t
		}
	}

	// Escopo por perfil, resolvido uma única vez aqui.
	switch p.Perfil {
	case auth.PerfilConsultor:
		f.ConsultorID = p.ID
	case auth.PerfilGerente:
		equipe, err := h.Hierarquia.EquipeDoGerente(p.ID)
		if err != nil {
			http.Error(w, "Erro ao resolver equipe", http.StatusInternalServerError)
			return
		}
		if len(equipe) == 0 {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]Lead{})
			return
		}
		f.Consultores = equipe
	}

	list, err := h.Repo.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao listar leads", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /leads/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	l, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Lead não encontrado", http.StatusNotFound)
		return
	}
	if !h.podeVer(p, l) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// PUT /leads/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	l, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Lead não encontrado", http.StatusNotFound)
		return
	}
	if !h.podeMutar(p, l) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dto AtualizarLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if l.Status == StatusConvertido && dto.Status != "" {
		http.Error(w, "Lead convertido não volta ao funil", http.StatusConflict)
		return
	}

	if dto.Nome != "" {
		l.Nome = dto.Nome
	}
	if dto.Telefone != "" {
		l.Telefone = dto.Telefone
	}
	if dto.Email != "" {
		l.Email = dto.Email
	}
	if dto.Status != "" {
		l.Status = dto.Status
	}

	if err := h.Repo.Update(l); err != nil {
		http.Error(w, "Erro ao atualizar lead", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// DELETE /leads/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	l, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Lead não encontrado", http.StatusNotFound)
		return
	}
	if !h.podeMutar(p, l) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if err := h.Repo.Delete(l); err != nil {
		http.Error(w, "Erro ao excluir lead", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) podeVer(p auth.Principal, l *Lead) bool {
	equipe := h.equipeSeGerente(p)
	return auth.PodeVer(p, auth.Recurso{ClinicaID: l.ClinicaID, ConsultorID: l.IndicadoPor}, equipe)
}

func (h *Handler) podeMutar(p auth.Principal, l *Lead) bool {
	equipe := h.equipeSeGerente(p)
	return auth.PodeMutar(p, auth.Recurso{ClinicaID: l.ClinicaID, ConsultorID: l.IndicadoPor}, equipe)
}

func (h *Handler) equipeSeGerente(p auth.Principal) []uint {
	if p.Perfil != auth.PerfilGerente {
		return nil
	}
	equipe, err := h.Hierarquia.EquipeDoGerente(p.ID)
	if err != nil {
		return nil
	}
	return equipe
}
