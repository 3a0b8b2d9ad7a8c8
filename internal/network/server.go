package network

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server é a estrutura principal do nosso servidor de rede.
// Ele gerencia um Hub e o endpoint de upgrade para WebSocket.
type Server struct {
	hub *Hub
	mux *http.ServeMux
}

// upgrader armazena as configurações para promover uma conexão HTTP para WebSocket.
var upgrader = websocket.Upgrader{
	// CheckOrigin controla quais domínios podem se conectar.
	// Para desenvolvimento, permitimos qualquer origem.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer aceita um EventHandler e o injeta no Hub.
// Este é o ponto de injeção da lógica do jogo.
func NewServer(handler EventHandler) *Server {
	return &Server{
		hub: NewHub(handler),
		mux: http.NewServeMux(),
	}
}

// Handle registra rotas HTTP adicionais no mesmo servidor (ex: /health).
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// wsHandler lida com a requisição HTTP e a promove para uma conexão WebSocket.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("Erro ao fazer upgrade da conexão: %v\n", err)
		return
	}

	client := &Client{
		conn: conn,
		hub:  s.hub,
		send: make(chan Message, 256),
	}

	// Registra o novo cliente no Hub e inicia as goroutines de leitura
	// e escrita daquela conexão.
	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// Listen inicia a goroutine do Hub e o servidor HTTP.
// Todas as conexões WebSocket chegam pela rota "/ws".
func (s *Server) Listen(address string) error {
	go s.hub.Run()

	s.mux.HandleFunc("/ws", s.wsHandler)

	fmt.Printf("Servidor WebSocket escutando em ws://%s/ws\n", address)

	// http.ListenAndServe é bloqueante.
	return http.ListenAndServe(address, s.mux)
}
