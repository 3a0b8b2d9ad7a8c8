package network

import "encoding/json"

// Message é o envelope padrão para toda a comunicação, nos dois sentidos.
// O campo Type serve para roteamento e o Payload carrega os dados específicos
// do evento, mantidos em JSON bruto para decodificação posterior por quem
// conhece o formato (os handlers da camada de sessão).
type Message struct {
	Type    string          `json:"type"`    // Ex: "MOVE", "MATCH_FOUND"
	Payload json.RawMessage `json:"payload,omitempty"`
}
