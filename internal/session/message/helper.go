package message

import (
	"fmt"

	"xadrez/internal/network"
)

// SendError envia uma resposta de erro genérica para o peer.
func SendError(p network.Peer, format string, args ...any) {
	p.Send() <- CreateErrorResponse(fmt.Sprintf(format, args...))
}

// SendInvalidMove envia uma rejeição de lance para o peer que o submeteu.
func SendInvalidMove(p network.Peer, format string, args ...any) {
	p.Send() <- CreateInvalidMove(fmt.Sprintf(format, args...))
}
