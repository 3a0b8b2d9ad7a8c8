package session

// Matchmaker guarda a fila de jogadores procurando partida, em ordem estrita
// de chegada. Ele é um componente síncrono: todos os métodos são chamados
// pela goroutine única do Hub, então a fila nunca sofre mutação concorrente
// e nenhum canal ou lock é necessário aqui.
type Matchmaker struct {
	queue []*PlayerSession
}

// NewMatchmaker cria um Matchmaker com a fila vazia.
func NewMatchmaker() *Matchmaker {
	return &Matchmaker{
		queue: make([]*PlayerSession, 0),
	}
}

// Enqueue processa um pedido de partida. A operação é idempotente: se o
// jogador já estiver na fila ele é removido primeiro, para que um pedido
// duplicado não crie duas entradas.
//
// Retorna nil quando a fila estava vazia e o jogador foi estacionado, ou o
// oponente retirado da CABEÇA da fila (quem espera há mais tempo pareia
// primeiro). Exatamente um elemento é removido por pareamento.
func (m *Matchmaker) Enqueue(p *PlayerSession) *PlayerSession {
	m.Remove(p)

	if len(m.queue) == 0 {
		m.queue = append(m.queue, p)
		return nil
	}

	opponent := m.queue[0]
	m.queue = m.queue[1:]
	return opponent
}

// Remove tira o jogador da fila se ele estiver nela. É um no-op barato
// quando ausente, então o tratamento de desconexão chama sem verificar.
func (m *Matchmaker) Remove(p *PlayerSession) bool {
	for i, waiting := range m.queue {
		if waiting == p {
			// Truque de slice do Go para remover preservando a ordem.
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Waiting retorna quantos jogadores aguardam na fila.
func (m *Matchmaker) Waiting() int {
	return len(m.queue)
}
