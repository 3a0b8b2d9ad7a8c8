package session

import (
	"encoding/json"

	"xadrez/internal/session/message"
)

// handleLeaveQueue tira o jogador da fila a pedido dele. A remoção é um
// no-op se ele não estiver mais lá (pode ter acabado de ser pareado; nesse
// caso o estado já é in-match e este handler nem é roteado).
func handleLeaveQueue(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	h.matchmaker.Remove(session)
	session.State = state_LOBBY
	session.Client.Send() <- message.CreateLeftQueue()
}

// registerQueueHandlers popula o roteador com os comandos disponíveis na
// fila. FIND_MATCH continua roteado aqui de propósito: um pedido duplicado é
// idempotente (o Matchmaker remove a entrada antiga antes de processar), o
// jogador só recebe um novo SEARCHING_MATCH.
func (h *GameHandler) registerQueueHandlers() {
	h.queueRouter["FIND_MATCH"] = handleFindMatch
	h.queueRouter["LEAVE_QUEUE"] = handleLeaveQueue
}
