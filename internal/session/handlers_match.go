package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"xadrez/internal/chess"
	"xadrez/internal/session/message"
)

// lookupRoom resolve o id de sala vindo do payload e aplica a checagem de
// participante. O id é informado pelo cliente e não é verificado pelo
// transporte, então esta checagem é A autoridade (ver DESIGN.md): sala
// desconhecida é descartada em silêncio (não há estado para mutar) e
// não-participante recebe apenas um aviso.
func (h *GameHandler) lookupRoom(session *PlayerSession, roomID string) (*GameRoom, bool) {
	room, ok := h.store.Get(roomID)
	if !ok {
		fmt.Printf("Room not found: %s (from %s)\n", roomID, session.Client.Addr())
		return nil, false
	}
	if !room.IsParticipant(session) {
		message.SendError(session.Client, "You are not a participant of room %s.", roomID)
		return nil, false
	}
	return room, true
}

// handleMove é a submissão de lance: valida o payload, delega a checagem de
// turno e a mutação para a operação atômica ApplyMove da sala e faz a dupla
// notificação — o adversário aprende o lance, quem jogou recebe a confirmação
// do lance que já aplicou especulativamente no tabuleiro local.
func handleMove(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req struct {
		Room      string       `json:"room"`
		From      chess.Square `json:"from"`
		To        chess.Square `json:"to"`
		Promotion string       `json:"promotion"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.Room == "" {
		message.SendError(session.Client, "Invalid payload: 'room', 'from' and 'to' fields are required.")
		return
	}
	if !chess.ValidSquare(req.From) || !chess.ValidSquare(req.To) {
		message.SendInvalidMove(session.Client, "Malformed square in move %s-%s.", req.From, req.To)
		return
	}

	room, ok := h.lookupRoom(session, req.Room)
	if !ok {
		return
	}

	mv := chess.Move{From: req.From, To: req.To, Promotion: req.Promotion}
	isWhiteTurn, err := room.ApplyMove(session, mv)
	if err != nil {
		// Uma rejeição é a resposta final àquela submissão; o log de
		// lances não foi tocado.
		switch {
		case errors.Is(err, ErrNotYourTurn):
			message.SendInvalidMove(session.Client, "It's not your turn.")
		default:
			message.SendInvalidMove(session.Client, "Move rejected: %v", err)
		}
		return
	}

	room.Opponent(session).Client.Send() <- message.CreateOpponentMove(mv, isWhiteTurn)
	session.Client.Send() <- message.CreateMoveSuccess(mv, isWhiteTurn)

	// O coordenador nunca calcula xeque-mate ou empate: depois de cada lance
	// aceito o colaborador de regras avalia o histórico e pode devolver um
	// veredito terminal para ser anunciado.
	if v := h.rules.Evaluate(room.Moves()); v.Over {
		h.concludeWithVerdict(room, v)
	}
}

// handleChat repassa a mensagem APENAS para o adversário. Quem enviou nunca
// recebe eco por este caminho: o cliente dele renderiza a própria mensagem.
func handleChat(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req struct {
		Room    string `json:"room"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.Room == "" {
		message.SendError(session.Client, "Invalid payload: 'room' and 'message' fields are required.")
		return
	}

	room, ok := h.lookupRoom(session, req.Room)
	if !ok {
		return
	}

	room.Opponent(session).Client.Send() <- message.CreateChat(req.Message)
}

// handleResign é a desistência: o adversário vence e a sala é encerrada na
// hora. Quem desistiu não recebe GAME_OVER — ele já sabe o que fez.
func handleResign(h *GameHandler, session *PlayerSession, payload json.RawMessage) {
	var req struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.Room == "" {
		message.SendError(session.Client, "Invalid payload: 'room' field is required.")
		return
	}

	room, ok := h.lookupRoom(session, req.Room)
	if !ok {
		return
	}

	h.forfeit(room, session, chess.ReasonResignation)
}

// registerMatchHandlers popula o roteador com os comandos disponíveis
// durante uma partida.
func (h *GameHandler) registerMatchHandlers() {
	h.matchRouter["MOVE"] = handleMove
	h.matchRouter["CHAT"] = handleChat
	h.matchRouter["RESIGN"] = handleResign
}
