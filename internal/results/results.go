// Package results publica o resultado das partidas concluídas para quem
// quiser consumir fora do processo (estatísticas, ranking). A publicação é
// fire-and-forget: uma falha aqui nunca afeta o coordenador.
package results

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// Subject é o assunto NATS onde os resultados são publicados.
const Subject = "xadrez.results"

// Report é o registro de uma partida concluída. Winner fica vazio em empate.
type Report struct {
	Room       string    `json:"room"`
	Winner     string    `json:"winner,omitempty"`
	Reason     string    `json:"reason"`
	Plies      int       `json:"plies"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Publisher é o destino dos resultados. O coordenador só conhece esta
// interface; a escolha entre NATS e Nop acontece no main.
type Publisher interface {
	Publish(r Report)
}

// Nop descarta os resultados. É o publisher padrão quando NATS_URL não
// está configurada.
type Nop struct{}

func (Nop) Publish(Report) {}

// NATS publica os resultados em um servidor NATS.
type NATS struct {
	conn *nats.Conn
}

// NewNATS conecta no servidor NATS indicado.
func NewNATS(url string) (*NATS, error) {
	conn, err := nats.Connect(url, nats.Name("xadrez-server"))
	if err != nil {
		return nil, err
	}
	return &NATS{conn: conn}, nil
}

// Publish serializa e envia o resultado. Erros são apenas logados: o fim de
// partida já foi anunciado aos jogadores e não depende desta entrega.
func (p *NATS) Publish(r Report) {
	data, err := json.Marshal(r)
	if err != nil {
		log.Printf("Erro ao serializar resultado da sala %s: %v", r.Room, err)
		return
	}
	if err := p.conn.Publish(Subject, data); err != nil {
		log.Printf("Erro ao publicar resultado da sala %s no NATS: %v", r.Room, err)
	}
}

// Close drena e fecha a conexão.
func (p *NATS) Close() {
	if err := p.conn.Drain(); err != nil {
		log.Printf("Erro ao drenar conexão NATS: %v", err)
	}
}
