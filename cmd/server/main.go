// cmd/server/main.go
package main

import (
	"log"

	"xadrez/internal/chess"
	"xadrez/internal/cluster"
	"xadrez/internal/config"
	"xadrez/internal/network"
	"xadrez/internal/results"
	"xadrez/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	// Publicador de resultados: NATS quando configurado, descarte caso
	// contrário. O coordenador não sabe a diferença.
	var publisher results.Publisher = results.Nop{}
	if cfg.NatsURL != "" {
		nats, err := results.NewNATS(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Erro ao conectar no NATS em %s: %v", cfg.NatsURL, err)
		}
		defer nats.Close()
		publisher = nats
	}

	// A lógica do jogo, injetada no servidor de rede. NopRules delega toda
	// a legalidade aos clientes: desistência e desconexão são os únicos
	// términos até um engine de regras de verdade ser plugado aqui.
	gameHandler := session.NewGameHandler(chess.NopRules{}, publisher)

	server := network.NewServer(gameHandler)
	server.Handle("/health", cluster.NewBasicHealthHandler())

	if cfg.ConsulAddr != "" {
		if err := cluster.Register(cfg.ServiceName, cfg.ConsulAddr, cfg.Addr); err != nil {
			log.Fatalf("Erro no registro do Consul: %v", err)
		}
	}

	if err := server.Listen(cfg.Addr); err != nil {
		log.Fatalf("Não foi possível iniciar o servidor: %v", err)
	}
}
