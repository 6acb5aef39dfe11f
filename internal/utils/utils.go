package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// A senha temporária é repassada ao consultor por telefone ou WhatsApp no
// cadastro; o alfabeto omite caracteres ambíguos (0/O, 1/l/I).
const (
	tamanhoSenhaTemporaria  = 12
	alfabetoSenhaTemporaria = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara hash bcrypt com a senha em texto puro.
func VerificarSenha(hash, senha string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha))
	return err == nil
}

// GerarSenhaTemporaria gera a senha inicial de um consultor cadastrado sem
// senha própria; o login marca PrecisaRedefinirSenha até a troca.
func GerarSenhaTemporaria() (string, error) {
	result := make([]byte, tamanhoSenhaTemporaria)
	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfabetoSenhaTemporaria))))
		if err != nil {
			return "", err
		}
		result[i] = alfabetoSenhaTemporaria[num.Int64()]
	}
	return string(result), nil
}
