package conversao

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Handler expõe a conversão de leads
type Handler struct {
	Service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service, validate: validator.New()}
}

// POST /leads/{id}/converter
func (h *Handler) Converter(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalDoContexto(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de lead inválido", http.StatusBadRequest)
		return
	}

	// Mesma política de mutação das demais rotas de lead: consultor só converte
	// as próprias indicações, gerente as da equipe.
	l, err := h.Service.Leads.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Lead não encontrado", http.StatusNotFound)
		return
	}
	var equipe []uint
	if p.Perfil == auth.PerfilGerente {
		equipe, _ = h.Service.Hierarquia.EquipeDoGerente(p.ID)
	}
	if !auth.PodeMutar(p, auth.Recurso{ClinicaID: l.ClinicaID, ConsultorID: l.IndicadoPor}, equipe) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	// Corpo vazio é aceito: converte com 1 arcada.
	var dto ConverterLeadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "payload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	arcadas := 1
	if dto.Arcadas != nil {
		arcadas = *dto.Arcadas
	}

	res, err := h.Service.Converter(p.ClinicaID, uint(id), arcadas)
	switch {
	case errors.Is(err, ErrArcadasInvalidas):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrLeadJaConvertido):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, ErrLeadDeOutraClinica):
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, "Erro ao converter lead", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}
