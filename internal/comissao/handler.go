package comissao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Store é o que o handler precisa do repository; os testes usam um fake.
type Store interface {
	FindByID(id uint) (*Comissao, error)
	Listar(f Filtro) ([]Comissao, error)
	MarcarComoPaga(id uint) error
	Cancelar(id uint) error
}

// Handler gerencia rotas de comissões
type Handler struct {
	Repo Store
}

func NewHandler(repo Store) *Handler {
	return &Handler{Repo: repo}
}

// GET /comissoes?status=&tipo=&estabelecimento=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	f := Filtro{
		ClinicaID:             p.ClinicaID,
		Status:                r.URL.Query().Get("status"),
		Tipo:                  r.URL.Query().Get("tipo"),
		EstabelecimentoCodigo: r.URL.Query().Get("estabelecimento"),
	}
	// Consultor e gerente veem apenas as próprias comissões.
	if p.Perfil == auth.PerfilConsultor || p.Perfil == auth.PerfilGerente {
		f.UsuarioID = p.ID
	}

	list, err := h.Repo.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao listar comissões", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /comissoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	}
	if c.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if (p.Perfil == auth.PerfilConsultor || p.Perfil == auth.PerfilGerente) && c.UsuarioID != p.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// PATCH /comissoes/{id}/pagar
func (h *Handler) MarcarComoPaga(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	}
	// Admin paga apenas comissões da própria clínica.
	if c.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if c.Status != StatusPendente {
		http.Error(w, "Somente comissões pendentes podem ser pagas", http.StatusConflict)
		return
	}

	if err := h.Repo.MarcarComoPaga(uint(id)); err != nil {
		http.Error(w, "Erro ao marcar comissão como paga", http.StatusInternalServerError)
		return
	}

	c, err = h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada após atualização", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// PATCH /comissoes/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	}
	if c.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if err := h.Repo.Cancelar(uint(id)); err != nil {
		http.Error(w, "Erro ao cancelar comissão", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
