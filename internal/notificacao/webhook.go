package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// Webhook envia alertas fire-and-forget para a URL configurada em
// NOTIFICACAO_WEBHOOK_URL. Sem URL configurada, os alertas são descartados.
type Webhook struct {
	URL string
}

func NewWebhook() *Webhook {
	return &Webhook{URL: os.Getenv("NOTIFICACAO_WEBHOOK_URL")}
}

// AlertaMarcoAtingido avisa que a equipe de um gerente cruzou um marco de
// arcadas acumuladas em um estabelecimento.
func (n *Webhook) AlertaMarcoAtingido(gerenteID uint, estabelecimentoCodigo string, marco int) {
	if n == nil || n.URL == "" {
		return
	}

	payload := map[string]string{
		"mensagem":        fmt.Sprintf("Equipe do gerente %d atingiu %d arcadas acumuladas", gerenteID, marco),
		"gerenteId":       fmt.Sprint(gerenteID),
		"estabelecimento": estabelecimentoCodigo,
		"marco":           fmt.Sprint(marco),
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
