package utils

import (
	"strings"
	"testing"
)

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("segredo123")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if hash == "segredo123" {
		t.Fatal("hash não pode ser a senha em texto puro")
	}
	if !VerificarSenha(hash, "segredo123") {
		t.Error("senha correta deveria verificar")
	}
	if VerificarSenha(hash, "outra") {
		t.Error("senha errada não pode verificar")
	}
}

func TestGerarSenhaTemporaria(t *testing.T) {
	senha, err := GerarSenhaTemporaria()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(senha) != tamanhoSenhaTemporaria {
		t.Errorf("tamanho esperado %d, veio %d", tamanhoSenhaTemporaria, len(senha))
	}
	for _, c := range senha {
		if !strings.ContainsRune(alfabetoSenhaTemporaria, c) {
			t.Errorf("caractere %q fora do alfabeto permitido", c)
		}
	}
}
