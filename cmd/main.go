package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
	"github.com/OdontoPrime/api-indicacoes/internal/clinica"
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/config"
	"github.com/OdontoPrime/api-indicacoes/internal/consultor"
	"github.com/OdontoPrime/api-indicacoes/internal/conversao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/gerente"
	"github.com/OdontoPrime/api-indicacoes/internal/hierarquia"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
	"github.com/OdontoPrime/api-indicacoes/internal/notificacao"
	"github.com/OdontoPrime/api-indicacoes/internal/relatorio"
	"github.com/OdontoPrime/api-indicacoes/internal/utils/db"
	"github.com/OdontoPrime/api-indicacoes/internal/vinculo"
)

func main() {
	cfg := config.Load()

	database, err := db.GetDB(cfg.DB)
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// Migrações de todos os domínios
	for _, migrar := range []func(*gorm.DB) error{
		clinica.Migrate,
		consultor.Migrate,
		gerente.Migrate,
		hierarquia.Migrate,
		vinculo.Migrate,
		estabelecimento.Migrate,
		lead.Migrate,
		comissao.Migrate,
	} {
		if err := migrar(database); err != nil {
			log.Fatal("Erro no AutoMigrate:", err)
		}
	}

	cache := config.NewRedisClient(cfg.Redis)

	// Repositories
	clinicaRepo := clinica.NewRepository(database)
	hierarquiaRepo := hierarquia.NewRepository(database)
	vinculoRepo := vinculo.NewRepository(database)
	estabRepo := estabelecimento.NewRepository(database)
	leadRepo := lead.NewRepository(database)
	comissaoRepo := comissao.NewRepository(database)

	// Serviço de conversão: o único ponto do sistema que emite comissões.
	conversaoService := &conversao.Service{
		Leads:              leadRepo,
		Comissoes:          comissaoRepo,
		Configuracoes:      estabRepo,
		Hierarquia:         hierarquiaRepo,
		Vinculos:           vinculoRepo,
		Notificador:        notificacao.NewWebhook(),
		BonusCadenciaAtivo: cfg.Conversao.BonusCadenciaAtivo,
		MarcosAtivos:       cfg.Conversao.MarcosAtivos,
	}

	teardown := &consultor.Teardown{
		DB:          database,
		Consultores: consultor.NewRepository(),
		Comissoes:   comissaoRepo,
		Vinculos:    vinculoRepo,
		Hierarquia:  hierarquiaRepo,
	}

	// Handlers
	clinicaHandler := clinica.NewHandler(clinicaRepo)
	consultorHandler := consultor.NewHandler(database, teardown, leadRepo, comissaoRepo)
	gerenteHandler := gerente.NewHandler(database, hierarquiaRepo, leadRepo, comissaoRepo)
	hierarquiaHandler := hierarquia.NewHandler(hierarquiaRepo)
	vinculoHandler := vinculo.NewHandler(vinculoRepo)
	estabHandler := estabelecimento.NewHandler(estabRepo)
	leadHandler := lead.NewHandler(leadRepo, hierarquiaRepo)
	comissaoHandler := comissao.NewHandler(comissaoRepo)
	conversaoHandler := conversao.NewHandler(conversaoService)
	relatorioHandler := relatorio.NewHandler(leadRepo, comissaoRepo, estabRepo, hierarquiaRepo, cache)

	// Router
	r := mux.NewRouter()

	// Rotas públicas (login)
	r.HandleFunc("/consultores/login", consultorHandler.Login).Methods("POST")
	r.HandleFunc("/gerentes/login", gerenteHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de clínicas (somente admin)
	api.Handle("/clinicas", auth.RequireAdmin(http.HandlerFunc(clinicaHandler.Criar))).Methods("POST")
	api.Handle("/clinicas", auth.RequireAdmin(http.HandlerFunc(clinicaHandler.Listar))).Methods("GET")
	api.Handle("/clinicas/{id}", auth.RequireAdmin(http.HandlerFunc(clinicaHandler.BuscarPorID))).Methods("GET")
	api.Handle("/clinicas/{id}", auth.RequireAdmin(http.HandlerFunc(clinicaHandler.Atualizar))).Methods("PUT")

	// Rotas de consultores
	api.HandleFunc("/consultores", consultorHandler.CriarConsultor).Methods("POST")
	api.HandleFunc("/consultores", consultorHandler.ListarConsultores).Methods("GET")
	api.HandleFunc("/me", consultorHandler.Me).Methods("GET")
	api.HandleFunc("/consultores/{id}", consultorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/consultores/{id}", consultorHandler.AtualizarConsultor).Methods("PUT")
	api.HandleFunc("/consultores/{id}", consultorHandler.DeletarConsultor).Methods("DELETE")
	api.HandleFunc("/consultores/{id}/resumo", consultorHandler.ObterResumoConsultor).Methods("GET")
	api.HandleFunc("/consultores/{id}/estatisticas", relatorioHandler.EstatisticasConsultor).Methods("GET")

	// Rotas de gerentes e equipe
	api.HandleFunc("/gerentes", gerenteHandler.CriarGerente).Methods("POST")
	api.HandleFunc("/gerentes", gerenteHandler.ListarGerentes).Methods("GET")
	api.HandleFunc("/gerentes/{id}", gerenteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/gerentes/{id}", gerenteHandler.AtualizarGerente).Methods("PUT")
	api.HandleFunc("/gerentes/{id}", gerenteHandler.DeletarGerente).Methods("DELETE")
	api.HandleFunc("/gerentes/{id}/resumo", gerenteHandler.ObterResumoGerente).Methods("GET")
	api.HandleFunc("/gerentes/{id}/estatisticas", relatorioHandler.EstatisticasGerente).Methods("GET")
	api.HandleFunc("/gerentes/{id}/equipe", hierarquiaHandler.AdicionarMembro).Methods("POST")
	api.HandleFunc("/gerentes/{id}/equipe", hierarquiaHandler.ListarEquipe).Methods("GET")
	api.HandleFunc("/gerentes/{id}/equipe/{cid}", hierarquiaHandler.RemoverMembro).Methods("DELETE")

	// Rotas de vínculo com estabelecimento
	api.HandleFunc("/usuarios/{id}/vinculos", vinculoHandler.Criar).Methods("POST")
	api.HandleFunc("/usuarios/{id}/vinculos", vinculoHandler.Listar).Methods("GET")
	api.HandleFunc("/usuarios/{id}/vinculos/{codigo}", vinculoHandler.Desativar).Methods("DELETE")

	// Rotas de estabelecimentos
	api.HandleFunc("/estabelecimentos", estabHandler.Criar).Methods("POST")
	api.HandleFunc("/estabelecimentos", estabHandler.Listar).Methods("GET")
	api.HandleFunc("/estabelecimentos/{codigo}", estabHandler.BuscarPorCodigo).Methods("GET")
	api.HandleFunc("/estabelecimentos/{codigo}/configuracao", estabHandler.BuscarConfiguracao).Methods("GET")
	api.HandleFunc("/estabelecimentos/{codigo}/configuracao", estabHandler.SalvarConfiguracao).Methods("PUT")
	api.HandleFunc("/estabelecimentos/{codigo}/estatisticas", relatorioHandler.EstatisticasEstabelecimento).Methods("GET")

	// Rotas de leads
	api.HandleFunc("/leads", leadHandler.Criar).Methods("POST")
	api.HandleFunc("/leads", leadHandler.Listar).Methods("GET")
	api.HandleFunc("/leads/{id}", leadHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/leads/{id}", leadHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/leads/{id}", leadHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/leads/{id}/converter", conversaoHandler.Converter).Methods("POST")

	// Rotas de comissões
	api.HandleFunc("/comissoes", comissaoHandler.Listar).Methods("GET")
	api.HandleFunc("/comissoes/{id}", comissaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/comissoes/{id}/pagar", comissaoHandler.MarcarComoPaga).Methods("PATCH")
	api.HandleFunc("/comissoes/{id}/cancelar", comissaoHandler.Cancelar).Methods("PATCH")

	// Painéis
	api.HandleFunc("/dashboard", relatorioHandler.Painel).Methods("GET")
	api.HandleFunc("/dashboard/tendencia", relatorioHandler.Tendencia).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origens,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + cfg.Porta)
	log.Fatal(http.ListenAndServe(":"+cfg.Porta, handler))
}
