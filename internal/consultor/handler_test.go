package consultor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

type fakeRepo struct {
	consultores map[uint]*Consultor
	deletados   int
}

func (f *fakeRepo) BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Consultor, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Salvar(db *gorm.DB, c *Consultor) error { return nil }

func (f *fakeRepo) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	c, ok := f.consultores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListarPorClinica(db *gorm.DB, clinicaID uint) ([]Consultor, error) {
	return nil, nil
}

func (f *fakeRepo) Atualizar(db *gorm.DB, id uint, novosDados *Consultor) error { return nil }

func (f *fakeRepo) Deletar(db *gorm.DB, id uint) error {
	f.deletados++
	return nil
}

func requisicaoAdmin(t *testing.T, metodo, id string, clinicaID uint) *http.Request {
	t.Helper()
	req := httptest.NewRequest(metodo, "/consultores/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})

	ctx := context.WithValue(req.Context(), auth.CtxUserID, uint(9))
	ctx = context.WithValue(ctx, auth.CtxClinicaID, clinicaID)
	ctx = context.WithValue(ctx, auth.CtxPerfil, auth.PerfilAdmin)
	return req.WithContext(ctx)
}

func TestDeletarConsultorDeOutraClinica(t *testing.T) {
	repo := &fakeRepo{consultores: map[uint]*Consultor{
		5: {ClinicaID: 20, Nome: "Fulano"},
	}}
	h := &Handler{Repository: repo}

	// Admin da clínica 10 tentando excluir consultor da clínica 20.
	rec := httptest.NewRecorder()
	h.DeletarConsultor(rec, requisicaoAdmin(t, http.MethodDelete, "5", 10))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status esperado 403, veio %d", rec.Code)
	}
	if repo.deletados != 0 {
		t.Error("nenhuma remoção deveria ter acontecido")
	}
}

func TestResumoConsultorDeOutraClinica(t *testing.T) {
	repo := &fakeRepo{consultores: map[uint]*Consultor{
		5: {ClinicaID: 20, Nome: "Fulano"},
	}}
	h := &Handler{Repository: repo}

	rec := httptest.NewRecorder()
	h.ObterResumoConsultor(rec, requisicaoAdmin(t, http.MethodGet, "5", 10))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status esperado 403, veio %d", rec.Code)
	}
}
