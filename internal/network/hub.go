package network

// clientMessage empacota uma mensagem com o cliente que a enviou.
// O Hub precisa de ambos para repassar ao EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia eventos para o handler.
// Ele é o registro de conexões do servidor: tudo que está em h.clients está
// vivo, e a saída de um cliente é notificada exatamente uma vez.
type Hub struct {
	// Clientes registrados. Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	// Canal para registrar novos clientes.
	register chan *Client

	// Canal para desregistrar clientes.
	unregister chan *Client

	// Canal para mensagens de entrada. As goroutines readLoop dos clientes
	// escrevem aqui; a goroutine do Hub consome em ordem de chegada, o que
	// serializa toda a mutação da lógica do jogo.
	incoming chan clientMessage

	// O handler da lógica do jogo que processará os eventos.
	handler EventHandler
}

// NewHub cria, inicializa e retorna um novo Hub.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

// Run é o loop único de processamento de eventos do servidor. Nenhuma outra
// goroutine toca na fila de matchmaking ou nas salas.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			// O readLoop e o writeLoop podem ambos derrubar a conexão;
			// o teste de presença garante uma única notificação.
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Fechar o canal 'send' é o sinal para o writeLoop
				// daquele cliente parar.
				close(client.send)
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			// O Hub não se importa com o conteúdo da mensagem, apenas
			// delega para a lógica do jogo.
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
