package session

import (
	"errors"

	"xadrez/internal/chess"
	"xadrez/internal/network"
)

// Erros de rejeição de lance. São respostas finais àquela submissão: o
// coordenador nunca tenta de novo por conta própria.
var (
	ErrRoomConcluded  = errors.New("room already concluded")
	ErrNotParticipant = errors.New("client is not a participant of this room")
	ErrNotYourTurn    = errors.New("not your turn")
)

type roomStatus int

const (
	statusActive roomStatus = iota
	statusConcluded
)

// GameRoom representa uma partida em andamento (ou recém-terminada).
// Os participantes são fixados na criação e nunca mudam; o log de lances é
// append-only e só este tipo escreve nele. O turno não é um campo: ele é
// sempre derivado do tamanho do log (ver chess.TurnAt).
type GameRoom struct {
	ID string

	white *PlayerSession
	black *PlayerSession

	moves  []chess.Move
	status roomStatus
}

// NewGameRoom cria uma sala ativa com os dois participantes fixos.
// O primeiro jogador da fila vira as brancas (abre a partida).
func NewGameRoom(id string, white, black *PlayerSession) *GameRoom {
	return &GameRoom{
		ID:     id,
		white:  white,
		black:  black,
		moves:  make([]chess.Move, 0),
		status: statusActive,
	}
}

// ColorOf retorna a cor do participante, ou false se ele não joga esta partida.
func (gr *GameRoom) ColorOf(p *PlayerSession) (chess.Color, bool) {
	switch p {
	case gr.white:
		return chess.White, true
	case gr.black:
		return chess.Black, true
	}
	return "", false
}

// IsParticipant informa se a sessão pertence a esta sala.
func (gr *GameRoom) IsParticipant(p *PlayerSession) bool {
	_, ok := gr.ColorOf(p)
	return ok
}

// Opponent é um pequeno utilitário para encontrar o adversário de um jogador.
func (gr *GameRoom) Opponent(p *PlayerSession) *PlayerSession {
	if gr.white == p {
		return gr.black
	}
	return gr.white
}

// Participants retorna os dois jogadores, brancas primeiro.
func (gr *GameRoom) Participants() [2]*PlayerSession {
	return [2]*PlayerSession{gr.white, gr.black}
}

// Turn deriva de quem é a vez a partir do log de lances.
func (gr *GameRoom) Turn() chess.Color {
	return chess.TurnAt(len(gr.moves))
}

// Moves retorna o log de lances aplicados, na ordem.
func (gr *GameRoom) Moves() []chess.Move {
	return gr.moves
}

// Concluded informa se a partida já terminou. Uma sala concluída nunca
// volta a ficar ativa.
func (gr *GameRoom) Concluded() bool {
	return gr.status == statusConcluded
}

// conclude marca a sala como terminada. Idempotente.
func (gr *GameRoom) conclude() {
	gr.status = statusConcluded
}

// ApplyMove é a operação atômica de "checar e aplicar" um lance: toda a
// validação de posse de turno e a mutação do log acontecem aqui dentro, sem
// ceder controle no meio, então nenhum outro evento pode se intrometer entre
// a checagem e o append.
//
// Em caso de sucesso retorna se o próximo lance é das brancas (o flag que os
// dois clientes recebem). O conteúdo do lance em si é opaco para a sala:
// legalidade é assunto do RulesEngine.
func (gr *GameRoom) ApplyMove(p *PlayerSession, mv chess.Move) (isWhiteTurn bool, err error) {
	if gr.Concluded() {
		return false, ErrRoomConcluded
	}

	color, ok := gr.ColorOf(p)
	if !ok {
		return false, ErrNotParticipant
	}

	if color != gr.Turn() {
		return false, ErrNotYourTurn
	}

	gr.moves = append(gr.moves, mv)
	return gr.Turn() == chess.White, nil
}

// broadcast envia a mesma mensagem para ambos os jogadores.
func (gr *GameRoom) broadcast(msg network.Message) {
	gr.white.Client.Send() <- msg
	gr.black.Client.Send() <- msg
}
