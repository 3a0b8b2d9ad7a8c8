package session

import (
	"xadrez/internal/network"
)

// Constantes de estado da sessão para evitar erros de digitação.
const (
	state_LOBBY    = "lobby"    // Jogador está online, fora de fila e de partida.
	state_IN_QUEUE = "in-queue" // Jogador está na fila de matchmaking.
	state_IN_MATCH = "in-match" // Jogador está em uma partida ativa.
)

// PlayerSession representa um jogador único e conectado ao servidor.
// O estado decide qual roteador de comandos atende as mensagens dele.
type PlayerSession struct {
	Client network.Peer
	State  string

	// Room aponta para a sala atual quando State == state_IN_MATCH.
	// Um jogador participa de no máximo uma sala ativa por vez.
	Room *GameRoom
}

// NewPlayerSession cria e inicializa uma nova sessão de jogador.
func NewPlayerSession(client network.Peer) *PlayerSession {
	return &PlayerSession{
		Client: client,
		State:  state_LOBBY, // Todo jogador começa no lobby.
	}
}
