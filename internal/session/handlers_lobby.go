package session

import (
	"encoding/json"
	"fmt"
	"log"

	"xadrez/internal/chess"
	"xadrez/internal/session/message"
)

// handleFindMatch processa um pedido de partida vindo do lobby. Fila vazia:
// o jogador é estacionado e avisado. Fila com gente: a CABEÇA da fila sai
// para ser o oponente, uma sala é criada e os dois recebem suas cores.
//
// Um FIND_MATCH de quem já está em partida nem chega aqui: o roteador de
// estado responde com erro sem tocar na partida (decisão registrada no
// DESIGN.md — rejeitar, nunca desistir em nome do jogador).
func handleFindMatch(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	opponent := h.matchmaker.Enqueue(session)
	if opponent == nil {
		session.State = state_IN_QUEUE
		session.Client.Send() <- message.CreateSearchingMatch()
		fmt.Printf("Player searching for match: %s. Queue size: %d\n", session.Client.Addr(), h.matchmaker.Waiting())
		return
	}

	// Quem esperava há mais tempo joga de brancas e abre a partida.
	room, err := h.store.Create(opponent, session)
	if err != nil {
		// Colisão de id é erro fatal de criação: nada foi inserido.
		// Devolve os DOIS ao lobby e avisa: quem pediu pode ter chegado
		// aqui pelo roteador da fila e ficaria preso em in-queue sem
		// estar mais na fila.
		log.Printf("Failed to create room: %v", err)
		opponent.State = state_LOBBY
		session.State = state_LOBBY
		message.SendError(opponent.Client, "Could not create the match, please try again.")
		message.SendError(session.Client, "Could not create the match, please try again.")
		return
	}

	opponent.State = state_IN_MATCH
	opponent.Room = room
	session.State = state_IN_MATCH
	session.Room = room

	opponent.Client.Send() <- message.CreateMatchFound(chess.White, room.ID)
	session.Client.Send() <- message.CreateMatchFound(chess.Black, room.ID)

	fmt.Printf("Match found! %s (white) vs %s (black) in room %s.\n",
		opponent.Client.Addr(), session.Client.Addr(), room.ID)
}

// registerLobbyHandlers popula o roteador com os comandos do lobby.
func (h *GameHandler) registerLobbyHandlers() {
	h.lobbyRouter["FIND_MATCH"] = handleFindMatch
}
