package session

import (
	"encoding/json"
	"fmt"
	"time"

	"xadrez/internal/chess"
	"xadrez/internal/network"
	"xadrez/internal/results"
	"xadrez/internal/session/message"
)

// CommandHandlerFunc define a assinatura de todas as funções que lidam com
// comandos. Elas recebem o contexto da sessão e o payload bruto da mensagem.
type CommandHandlerFunc func(h *GameHandler, session *PlayerSession, payload json.RawMessage)

// GameHandler implementa a interface network.EventHandler. Ele é o roteador
// de eventos e a autoridade de turno do servidor: todo findMatch/move/chat/
// resign passa por aqui, e toda mutação de fila e de sala acontece dentro
// dos métodos dele, na goroutine única do Hub.
type GameHandler struct {
	sessions   map[network.Peer]*PlayerSession
	matchmaker *Matchmaker
	store      *RoomStore

	// Colaboradores externos: regras do xadrez e publicação de resultados.
	rules   chess.RulesEngine
	results results.Publisher

	// Um roteador de comandos para cada estado do jogador. Um comando fora
	// do estado certo (ex: FIND_MATCH no meio de uma partida) simplesmente
	// não é roteado e vira uma resposta de erro para quem mandou.
	lobbyRouter map[string]CommandHandlerFunc
	queueRouter map[string]CommandHandlerFunc
	matchRouter map[string]CommandHandlerFunc
}

// NewGameHandler monta o handler com seus colaboradores e popula os
// roteadores de comando.
func NewGameHandler(rules chess.RulesEngine, pub results.Publisher) *GameHandler {
	h := &GameHandler{
		sessions:    make(map[network.Peer]*PlayerSession),
		matchmaker:  NewMatchmaker(),
		store:       NewRoomStore(),
		rules:       rules,
		results:     pub,
		lobbyRouter: make(map[string]CommandHandlerFunc),
		queueRouter: make(map[string]CommandHandlerFunc),
		matchRouter: make(map[string]CommandHandlerFunc),
	}
	h.registerLobbyHandlers()
	h.registerQueueHandlers()
	h.registerMatchHandlers()
	return h
}

// --- Implementação da interface network.EventHandler ---

// OnConnect é chamado pela goroutine do network.Hub. É seguro modificar o
// estado aqui.
func (h *GameHandler) OnConnect(p network.Peer) {
	h.sessions[p] = NewPlayerSession(p)
	fmt.Printf("User connected: %s. Total sessions: %d\n", p.Addr(), len(h.sessions))
}

// OnDisconnect faz a limpeza central: tira o jogador da fila (no-op barato
// se ele não estiver nela) e concede W.O. em toda sala em que ele participa.
// O Hub garante que este método roda exatamente uma vez por cliente, depois
// de todas as mensagens anteriores dele.
func (h *GameHandler) OnDisconnect(p network.Peer) {
	session, ok := h.sessions[p]
	if !ok {
		// Se não havia sessão, não há nada para limpar.
		return
	}

	h.matchmaker.Remove(session)

	// Varre o store em vez de confiar só em session.Room: a invariante diz
	// que há no máximo uma sala ativa por jogador, mas o W.O. vale para
	// qualquer sala que o contenha. O callback deleta durante a varredura.
	h.store.EachWith(session, func(room *GameRoom) {
		h.forfeit(room, session, chess.ReasonDisconnect)
	})

	delete(h.sessions, p)
	fmt.Printf("User disconnected: %s. Total sessions: %d\n", p.Addr(), len(h.sessions))
}

// OnMessage é um despachante: seleciona o roteador pelo estado do jogador e
// procura o handler do comando.
func (h *GameHandler) OnMessage(p network.Peer, msg network.Message) {
	session, ok := h.sessions[p]
	if !ok {
		return // Ignora mensagens de clientes sem sessão.
	}

	var router map[string]CommandHandlerFunc
	switch session.State {
	case state_LOBBY:
		router = h.lobbyRouter
	case state_IN_QUEUE:
		router = h.queueRouter
	case state_IN_MATCH:
		router = h.matchRouter
	default:
		message.SendError(session.Client, "Invalid state of player: %s", session.State)
		return
	}

	handler, found := router[msg.Type]
	if !found {
		message.SendError(session.Client, "Unknown or invalid command for current state of player: %s", msg.Type)
		return
	}

	handler(h, session, msg.Payload)
}

// --- Término de partida ---

// forfeit encerra a sala por desistência ou desconexão: o OUTRO participante
// é o vencedor e é o único notificado (quem desistiu já sabe; quem caiu não
// tem mais canal). Idempotente contra uma sala já concluída.
func (h *GameHandler) forfeit(room *GameRoom, loser *PlayerSession, reason chess.Reason) {
	if room.Concluded() {
		return
	}

	loserColor, ok := room.ColorOf(loser)
	if !ok {
		return
	}
	winnerColor := loserColor.Opponent()

	winner := room.Opponent(loser)
	winner.Client.Send() <- message.CreateGameOver(winnerColor, reason)

	h.closeRoom(room, string(winnerColor), reason)

	fmt.Printf("Room %s: game over, winner %s (%s).\n", room.ID, winnerColor, reason)
}

// concludeWithVerdict encerra a sala com um veredito do RulesEngine
// (xeque-mate ou empate). Os dois participantes continuam conectados, então
// ambos recebem o anúncio.
func (h *GameHandler) concludeWithVerdict(room *GameRoom, v chess.Verdict) {
	if room.Concluded() {
		return
	}

	room.broadcast(message.CreateGameOver(v.Winner, v.Reason))
	h.closeRoom(room, string(v.Winner), v.Reason)

	fmt.Printf("Room %s: game over by verdict, winner %q (%s).\n", room.ID, v.Winner, v.Reason)
}

// closeRoom faz a transição Active -> Concluded: marca a sala, remove do
// store, devolve os participantes ao lobby e publica o resultado.
func (h *GameHandler) closeRoom(room *GameRoom, winner string, reason chess.Reason) {
	room.conclude()
	h.store.Delete(room.ID)

	for _, p := range room.Participants() {
		p.State = state_LOBBY
		p.Room = nil
	}

	h.results.Publish(results.Report{
		Room:       room.ID,
		Winner:     winner,
		Reason:     string(reason),
		Plies:      len(room.Moves()),
		FinishedAt: time.Now(),
	})
}
