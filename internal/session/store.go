package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoomStore é o dono do mapa de salas ativas. Criação, consulta e remoção
// passam todas por aqui; salas concluídas são removidas e nunca voltam.
// Como todo o resto da camada de sessão, ele roda na goroutine do Hub.
type RoomStore struct {
	rooms map[string]*GameRoom

	// idGen gera os ids de sala. Substituível nos testes para forçar
	// colisões determinísticas.
	idGen func() string
}

// NewRoomStore cria um store vazio.
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*GameRoom),
		idGen: newRoomID,
	}
}

// newRoomID gera um identificador único de sala: o timestamp preserva o
// formato "game-<momento da criação>" do protocolo e o uuid serve de sal
// contra colisões no mesmo milissegundo.
func newRoomID() string {
	return fmt.Sprintf("game-%d-%s", time.Now().UnixMilli(), uuid.NewString())
}

// Create gera o id, insere a sala e a retorna. Uma colisão de id entre salas
// vivas é erro de criação: nenhum estado é sobrescrito.
func (s *RoomStore) Create(white, black *PlayerSession) (*GameRoom, error) {
	id := s.idGen()
	if _, exists := s.rooms[id]; exists {
		return nil, fmt.Errorf("room id collision: %s", id)
	}

	room := NewGameRoom(id, white, black)
	s.rooms[id] = room
	return room, nil
}

// Get retorna a sala pelo id, se existir.
func (s *RoomStore) Get(id string) (*GameRoom, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// Delete remove a sala do store. No-op se o id não existir.
func (s *RoomStore) Delete(id string) {
	delete(s.rooms, id)
}

// Len retorna quantas salas vivas existem.
func (s *RoomStore) Len() int {
	return len(s.rooms)
}

// EachWith visita toda sala em que o jogador participa. O callback PODE
// remover salas do store durante a varredura: deletar a chave corrente (ou
// qualquer outra) no meio de um range de mapa é seguro em Go, e é exatamente
// o que o tratamento de desconexão faz.
func (s *RoomStore) EachWith(p *PlayerSession, fn func(*GameRoom)) {
	for _, room := range s.rooms {
		if room.IsParticipant(p) {
			fn(room)
		}
	}
}
