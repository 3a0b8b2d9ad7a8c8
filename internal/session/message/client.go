package message

// Isso aqui são as mensagens que vão no sentido servidor -> cliente.
// Os nomes de campo seguem o formato de fio que os clientes já conhecem
// (from/to/room/color/isWhiteTurn).

import (
	"encoding/json"

	"xadrez/internal/chess"
	"xadrez/internal/network"
)

// Tipos de mensagem de saída. Os handlers e os testes referenciam estes
// valores em vez de strings soltas.
const (
	TypeSearchingMatch = "SEARCHING_MATCH"
	TypeLeftQueue      = "LEFT_QUEUE"
	TypeMatchFound     = "MATCH_FOUND"
	TypeOpponentMove   = "OPPONENT_MOVE"
	TypeMoveSuccess    = "MOVE_SUCCESS"
	TypeInvalidMove    = "INVALID_MOVE"
	TypeChat           = "CHAT"
	TypeGameOver       = "GAME_OVER"
	TypeError          = "RESPONSE_ERROR"
)

// MatchFoundPayload informa a cada jogador a sua cor e a sala criada.
type MatchFoundPayload struct {
	Color chess.Color `json:"color"`
	Room  string      `json:"room"`
}

// MovePayload é o corpo de OPPONENT_MOVE e de MOVE_SUCCESS. O mesmo lance
// sai duas vezes de propósito: quem jogou recebe a confirmação do lance que
// já aplicou localmente, o adversário recebe o lance que ainda não conhece.
type MovePayload struct {
	From        chess.Square `json:"from"`
	To          chess.Square `json:"to"`
	Promotion   string       `json:"promotion,omitempty"`
	IsWhiteTurn bool         `json:"isWhiteTurn"`
}

// ChatPayload é o relay de chat. O remetente nunca recebe eco: o cliente
// dele é responsável por renderizar a própria mensagem.
type ChatPayload struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// GameOverPayload anuncia o término. Winner fica vazio em empate.
type GameOverPayload struct {
	Winner chess.Color  `json:"winner,omitempty"`
	Reason chess.Reason `json:"reason"`
}

// InvalidMovePayload explica por que um lance foi rejeitado.
type InvalidMovePayload struct {
	Error string `json:"error"`
}

// ErrorPayload define a estrutura de uma resposta de erro genérica.
type ErrorPayload struct {
	Error string `json:"error"`
}

func envelope(msgType string, payload any) network.Message {
	if payload == nil {
		return network.Message{Type: msgType}
	}
	payloadBytes, _ := json.Marshal(payload)
	return network.Message{Type: msgType, Payload: payloadBytes}
}

// CreateSearchingMatch avisa o jogador que ele foi estacionado na fila.
func CreateSearchingMatch() network.Message {
	return envelope(TypeSearchingMatch, nil)
}

// CreateLeftQueue confirma a saída da fila.
func CreateLeftQueue() network.Message {
	return envelope(TypeLeftQueue, nil)
}

// CreateMatchFound monta a notificação de pareamento para UM dos jogadores.
func CreateMatchFound(color chess.Color, room string) network.Message {
	return envelope(TypeMatchFound, MatchFoundPayload{Color: color, Room: room})
}

// CreateOpponentMove leva um lance aceito ao jogador que NÃO o submeteu.
func CreateOpponentMove(mv chess.Move, isWhiteTurn bool) network.Message {
	return envelope(TypeOpponentMove, MovePayload{
		From:        mv.From,
		To:          mv.To,
		Promotion:   mv.Promotion,
		IsWhiteTurn: isWhiteTurn,
	})
}

// CreateMoveSuccess confirma o lance para quem o submeteu.
func CreateMoveSuccess(mv chess.Move, isWhiteTurn bool) network.Message {
	return envelope(TypeMoveSuccess, MovePayload{
		From:        mv.From,
		To:          mv.To,
		Promotion:   mv.Promotion,
		IsWhiteTurn: isWhiteTurn,
	})
}

// CreateInvalidMove rejeita uma submissão de lance. Só quem submeteu recebe.
func CreateInvalidMove(reason string) network.Message {
	return envelope(TypeInvalidMove, InvalidMovePayload{Error: reason})
}

// CreateChat monta o relay para o adversário. Do ponto de vista de quem
// recebe, o remetente é sempre "opponent".
func CreateChat(text string) network.Message {
	return envelope(TypeChat, ChatPayload{Sender: "opponent", Message: text})
}

// CreateGameOver anuncia o fim da partida com o vencedor calculado e o motivo.
func CreateGameOver(winner chess.Color, reason chess.Reason) network.Message {
	return envelope(TypeGameOver, GameOverPayload{Winner: winner, Reason: reason})
}

// CreateErrorResponse é a resposta genérica para eventos não roteáveis.
func CreateErrorResponse(errorMsg string) network.Message {
	return envelope(TypeError, ErrorPayload{Error: errorMsg})
}
