package network

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Frequência com que enviamos pings para o cliente. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client é a representação de um jogador conectado do ponto de vista do servidor.
// Ele agrupa a conexão WebSocket e os canais de comunicação.
type Client struct {
	conn *websocket.Conn

	// Uma referência ao Hub central. O cliente usa isso para se desregistrar.
	hub *Hub

	// Canal bufferizado para mensagens de saída. O Hub coloca as mensagens
	// aqui e a goroutine writeLoop as envia. O buffer evita que o Hub
	// bloqueie se o cliente estiver lento.
	send chan Message
}

// Send retorna o canal de saída do cliente. Satisfaz a interface Peer.
func (c *Client) Send() chan<- Message {
	return c.send
}

// Addr retorna o endereço remoto do cliente, para logs.
func (c *Client) Addr() string {
	return c.conn.RemoteAddr().String()
}

func (c *Client) readLoop() {
	// Garante que a limpeza ocorrerá quando o loop terminar.
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// Configura o deadline de leitura e o handler de pong. Cada pong recebido
	// empurra o deadline para frente, mantendo a conexão viva.
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("Erro inesperado no cliente %s: %v\n", c.Addr(), err)
			}
			// Para qualquer erro (desconexão normal ou anormal), saímos do loop.
			break
		}

		// Empacota a mensagem com o cliente que a enviou e entrega ao Hub.
		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal 'send' do cliente para a conexão WebSocket.
func (c *Client) writeLoop() {
	// Ticker para enviar pings periódicos para o cliente.
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// O canal 'send' foi fechado pelo Hub: o cliente foi desregistrado.
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				fmt.Printf("Erro de escrita no cliente %s: %v\n", c.Addr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Se o ping falhar, a conexão está morta.
			}
		}
	}
}
