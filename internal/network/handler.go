package network

// Peer é a visão que a lógica do jogo tem de um cliente conectado.
// O *Client concreto implementa esta interface; nos testes usamos peers
// falsos com canais bufferizados, sem precisar de uma conexão real.
type Peer interface {
	// Send retorna o canal de saída do peer. Escritas nele nunca bloqueiam
	// o chamador além da capacidade do buffer; a goroutine de escrita do
	// cliente é quem drena o canal.
	Send() chan<- Message

	// Addr identifica o peer para fins de log.
	Addr() string
}

// EventHandler é a interface que conecta a lógica da rede com a lógica do jogo.
// O código de jogo (fora deste pacote) implementa esta interface e é sempre
// chamado pela goroutine única do Hub, então pode modificar estado sem locks.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(p Peer)

	// OnDisconnect é chamado exatamente uma vez quando um cliente cai,
	// depois de todas as mensagens anteriores dele já terem sido entregues.
	OnDisconnect(p Peer)

	// OnMessage é chamado para cada mensagem recebida de um cliente.
	OnMessage(p Peer, msg Message)
}
