package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Porta     string
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Conversao ConversaoConfig
}

// ConversaoConfig liga as funcionalidades novas de bônus; ambas nascem
// desligadas para reproduzir o comportamento do painel antigo.
type ConversaoConfig struct {
	BonusCadenciaAtivo bool
	MarcosAtivos       bool
}

type DBConfig struct {
	Host     string
	Port     uint
	Name     string
	User     string
	Password string
}

type CORSConfig struct {
	Origens []string
}

// Load carrega o .env (se existir) e monta a configuração a partir do ambiente.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	dbPort, err := strconv.ParseUint(getEnv("DB_PORT", "5432"), 10, 32)
	if err != nil {
		dbPort = 5432
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		Porta: getEnv("PORT", "8080"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     uint(dbPort),
			Name:     getEnv("DB_NAME", "indicacoes"),
			User:     getEnv("DB_USERNAME", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			Ativo:    getEnv("REDIS_CACHE_ATIVO", "false") == "true",
		},
		CORS: CORSConfig{
			Origens: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Conversao: ConversaoConfig{
			BonusCadenciaAtivo: getEnv("BONUS_CADENCIA_ATIVO", "false") == "true",
			MarcosAtivos:       getEnv("BONUS_MARCOS_ATIVO", "false") == "true",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
