package consultor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
	"github.com/OdontoPrime/api-indicacoes/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type createConsultorRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"senha"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Teardown   *Teardown
	Leads      *lead.Repository
	Comissoes  *comissao.Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, teardown *Teardown, leads *lead.Repository, comissoes *comissao.Repository) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Teardown:   teardown,
		Leads:      leads,
		Comissoes:  comissoes,
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmailOuCPF(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.ClinicaID, auth.PerfilConsultor)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CriarConsultor cadastra um consultor na clínica do admin
func (h *Handler) CriarConsultor(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req createConsultorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	senha := req.Senha
	precisaRedefinir := false
	if senha == "" {
		temporaria, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = temporaria
		precisaRedefinir = true
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Consultor{
		ClinicaID:             p.ClinicaID,
		Nome:                  req.Nome,
		Sobrenome:             req.Sobrenome,
		CPF:                   req.CPF,
		Email:                 req.Email,
		Telefone:              req.Telefone,
		Foto:                  req.Foto,
		Senha:                 hash,
		PrecisaRedefinirSenha: precisaRedefinir,
	}

	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "erro ao salvar consultor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListarConsultores retorna todos da clínica ou apenas o próprio registro
func (h *Handler) ListarConsultores(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	if p.Perfil == auth.PerfilConsultor {
		obj, err := h.Repository.BuscarPorID(h.DB, p.ID)
		if err != nil {
			http.Error(w, "consultor não encontrado", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode([]Consultor{*obj})
		return
	}

	consultores, err := h.Repository.ListarPorClinica(h.DB, p.ClinicaID)
	if err != nil {
		http.Error(w, "erro ao listar consultores", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(consultores)
}

// BuscarPorID retorna um consultor pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if p.Perfil == auth.PerfilConsultor && uint(id) != p.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if obj.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	json.NewEncoder(w).Encode(obj)
}

// AtualizarConsultor altera dados de um consultor existente
func (h *Handler) AtualizarConsultor(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if p.Perfil != auth.PerfilAdmin && uint(id) != p.ID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	alvo, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if alvo.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados Consultor
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		http.Error(w, "erro ao atualizar consultor", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("consultor atualizado com sucesso"))
}

// DeletarConsultor remove um consultor e suas dependências (teardown ordenado)
func (h *Handler) DeletarConsultor(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	alvo, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if alvo.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	rel, err := h.Teardown.RemoverConsultor(uint(id))
	if err != nil {
		http.Error(w, "erro ao excluir consultor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rel)
}

// ObterResumoConsultor constrói e retorna o DTO de resumo
func (h *Handler) ObterResumoConsultor(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	idParam := p.ID
	if p.Perfil != auth.PerfilConsultor {
		if idStr := mux.Vars(r)["id"]; idStr != "" {
			if i, err := strconv.Atoi(idStr); err == nil {
				idParam = uint(i)
			}
		}
	}

	consultorObj, err := h.Repository.BuscarPorID(h.DB, idParam)
	if err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}
	if consultorObj.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	leads, _ := h.Leads.Listar(lead.Filtro{ClinicaID: consultorObj.ClinicaID, ConsultorID: consultorObj.ID})
	comissoes, _ := h.Comissoes.Listar(comissao.Filtro{ClinicaID: consultorObj.ClinicaID, UsuarioID: consultorObj.ID})
	dto := MontarResumoConsultorDTO(*consultorObj, leads, comissoes)

	json.NewEncoder(w).Encode(dto)
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	var c Consultor
	if err := h.DB.First(&c, p.ID).Error; err != nil {
		http.Error(w, "consultor não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
