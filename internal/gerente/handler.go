package gerente

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/hierarquia"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
	"github.com/OdontoPrime/api-indicacoes/internal/utils"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type createGerenteRequest struct {
	Nome           string `json:"nome"`
	Sobrenome      string `json:"sobrenome"`
	CPF            string `json:"cpf"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	Foto           string `json:"foto"`
	Senha          string `json:"senha"`
	IsAdmin        bool   `json:"isAdmin"`
	SomenteLeitura bool   `json:"somenteLeitura"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Hierarquia *hierarquia.Repository
	Leads      *lead.Repository
	Comissoes  *comissao.Repository
}

func NewHandler(db *gorm.DB, hier *hierarquia.Repository, leads *lead.Repository, comissoes *comissao.Repository) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Hierarquia: hier,
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

	user, err := h.Repository.FindByEmail(h.DB, req.Login)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.ClinicaID, user.Perfil())
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CriarGerente cadastra um gerente (ou visualizador) na clínica do admin
func (h *Handler) CriarGerente(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())
	if p.Perfil != auth.PerfilAdmin {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req createGerenteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	g := Gerente{
		ClinicaID:      p.ClinicaID,
		Nome:           req.Nome,
		Sobrenome:      req.Sobrenome,
		CPF:            req.CPF,
		Email:          req.Email,
		Telefone:       req.Telefone,
		Foto:           req.Foto,
		Senha:          hash,
		IsAdmin:        req.IsAdmin,
		SomenteLeitura: req.SomenteLeitura,
	}
	if err := h.Repository.Save(h.DB, &g); err != nil {
		http.Error(w, "erro ao salvar gerente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

// ListarGerentes lista os gerentes da clínica
func (h *Handler) ListarGerentes(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	list, err := h.Repository.ListByClinica(h.DB, p.ClinicaID)
	if err != nil {
		http.Error(w, "erro ao listar gerentes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

// BuscarPorID retorna um gerente pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	g, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "gerente não encontrado", http.StatusNotFound)
		return
	}
	if g.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	json.NewEncoder(w).Encode(g)
}

// AtualizarGerente altera dados cadastrais
func (h *Handler) AtualizarGerente(w http.ResponseWriter, r *http.Request) {
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
	alvo, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "gerente não encontrado", http.StatusNotFound)
		return
	}
	if alvo.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req UpdateGerenteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, uint(id), &req); err != nil {
		http.Error(w, "erro ao atualizar gerente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("gerente atualizado com sucesso"))
}

// DeletarGerente remove o gerente: comissões e arestas de equipe primeiro,
// em ordem fixa, registrando aviso quando um passo dependente falha.
func (h *Handler) DeletarGerente(w http.ResponseWriter, r *http.Request) {
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

	alvo, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "gerente não encontrado", http.StatusNotFound)
		return
	}
	if alvo.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Comissoes.DeletarDoUsuario(uint(id)); err != nil {
		log.Printf("teardown do gerente %d: comissões não removidas: %v", id, err)
	}
	if err := h.Hierarquia.RemoverDoGerente(uint(id)); err != nil {
		log.Printf("teardown do gerente %d: arestas de equipe não removidas: %v", id, err)
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir gerente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("gerente excluído com sucesso"))
}

// ObterResumoGerente monta o resumo da equipe do gerente
func (h *Handler) ObterResumoGerente(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	idParam := p.ID
	if p.Perfil == auth.PerfilAdmin || p.Perfil == auth.PerfilVisualizador {
		if idStr := mux.Vars(r)["id"]; idStr != "" {
			if i, err := strconv.Atoi(idStr); err == nil {
				idParam = uint(i)
			}
		}
	}

	g, err := h.Repository.FindByID(h.DB, idParam)
	if err != nil {
		http.Error(w, "gerente não encontrado", http.StatusNotFound)
		return
	}
	if g.ClinicaID != p.ClinicaID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	equipe, err := h.Hierarquia.EquipeDoGerente(g.ID)
	if err != nil {
		http.Error(w, "erro ao resolver equipe", http.StatusInternalServerError)
		return
	}

	dto := ResumoGerenteDTO{
		ID:            g.ID,
		Nome:          g.Nome,
		Sobrenome:     g.Sobrenome,
		Email:         g.Email,
		TamanhoEquipe: len(equipe),
	}

	if len(equipe) > 0 {
		leads, err := h.Leads.Listar(lead.Filtro{ClinicaID: g.ClinicaID, Consultores: equipe})
		if err == nil {
			for _, l := range leads {
				dto.LeadsDaEquipe++
				if l.Status == lead.StatusConvertido {
					dto.ArcadasDaEquipe += l.Arcadas()
				}
			}
		}
	}

	comissoes, err := h.Comissoes.Listar(comissao.Filtro{ClinicaID: g.ClinicaID, UsuarioID: g.ID})
	if err == nil {
		for _, c := range comissoes {
			switch c.Status {
			case comissao.StatusPaga:
				dto.ComissaoRecebida += c.Valor
			case comissao.StatusPendente:
				dto.ComissaoAReceber += c.Valor
			}
		}
	}

	json.NewEncoder(w).Encode(dto)
}
