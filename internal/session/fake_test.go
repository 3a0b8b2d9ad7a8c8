package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"xadrez/internal/network"
	"xadrez/internal/results"
)

// fakePeer implementa network.Peer com um canal bufferizado, sem conexão
// real. Os testes leem as notificações direto do canal.
type fakePeer struct {
	name string
	send chan network.Message
}

func newFakePeer(name string) *fakePeer {
	return &fakePeer{
		name: name,
		send: make(chan network.Message, 64),
	}
}

func (f *fakePeer) Send() chan<- network.Message { return f.send }
func (f *fakePeer) Addr() string                 { return f.name }

// next retorna a próxima notificação pendente; falha o teste se não houver.
func (f *fakePeer) next(t *testing.T) network.Message {
	t.Helper()
	select {
	case msg := <-f.send:
		return msg
	default:
		t.Fatalf("peer %s: nenhuma mensagem pendente", f.name)
		return network.Message{}
	}
}

// expect consome a próxima notificação e confere o tipo dela.
func (f *fakePeer) expect(t *testing.T, msgType string) network.Message {
	t.Helper()
	msg := f.next(t)
	require.Equal(t, msgType, msg.Type, "peer %s", f.name)
	return msg
}

// expectNothing garante que o peer não recebeu nada.
func (f *fakePeer) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case msg := <-f.send:
		t.Fatalf("peer %s: mensagem inesperada %s %s", f.name, msg.Type, string(msg.Payload))
	default:
	}
}

// decodePayload desserializa o payload de uma notificação no destino dado.
func decodePayload(t *testing.T, msg network.Message, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(msg.Payload, dst))
}

// rawPayload monta o payload JSON de um evento de entrada.
func rawPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

// moveMsg monta um evento MOVE completo.
func moveMsg(t *testing.T, room, from, to string) network.Message {
	t.Helper()
	return network.Message{
		Type: "MOVE",
		Payload: rawPayload(t, map[string]string{
			"room": room,
			"from": from,
			"to":   to,
		}),
	}
}

// recordingPublisher captura os resultados publicados pelo coordenador.
type recordingPublisher struct {
	reports []results.Report
}

func (r *recordingPublisher) Publish(rep results.Report) {
	r.reports = append(r.reports, rep)
}

var _ results.Publisher = (*recordingPublisher)(nil)
var _ network.Peer = (*fakePeer)(nil)
