package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xadrez/internal/chess"
	"xadrez/internal/network"
	"xadrez/internal/session/message"
)

func newTestHandler(rules chess.RulesEngine) (*GameHandler, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewGameHandler(rules, pub), pub
}

// pairUp conecta dois peers e os pareia: o primeiro vira as brancas.
// Retorna o id da sala criada.
func pairUp(t *testing.T, h *GameHandler, white, black *fakePeer) string {
	t.Helper()

	h.OnConnect(white)
	h.OnConnect(black)

	h.OnMessage(white, network.Message{Type: "FIND_MATCH"})
	white.expect(t, message.TypeSearchingMatch)

	h.OnMessage(black, network.Message{Type: "FIND_MATCH"})

	var mfWhite, mfBlack message.MatchFoundPayload
	decodePayload(t, white.expect(t, message.TypeMatchFound), &mfWhite)
	decodePayload(t, black.expect(t, message.TypeMatchFound), &mfBlack)

	require.Equal(t, chess.White, mfWhite.Color)
	require.Equal(t, chess.Black, mfBlack.Color)
	require.Equal(t, mfWhite.Room, mfBlack.Room)
	require.NotEmpty(t, mfWhite.Room)

	return mfWhite.Room
}

func TestFindMatch_PairsInArrivalOrder(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	c := newFakePeer("c")
	for _, p := range []*fakePeer{a, b, c} {
		h.OnConnect(p)
	}

	// a é estacionado; b chega e pareia com a (a joga de brancas).
	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)

	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	var mfA, mfB message.MatchFoundPayload
	decodePayload(t, a.expect(t, message.TypeMatchFound), &mfA)
	decodePayload(t, b.expect(t, message.TypeMatchFound), &mfB)
	req.Equal(chess.White, mfA.Color)
	req.Equal(chess.Black, mfB.Color)
	req.Equal(mfA.Room, mfB.Room)

	// c chega depois do pareamento: fila vazia de novo, c é estacionado.
	h.OnMessage(c, network.Message{Type: "FIND_MATCH"})
	c.expect(t, message.TypeSearchingMatch)
	req.Equal(1, h.matchmaker.Waiting())
	req.Equal(1, h.store.Len())
}

func TestFindMatch_DuplicateRequestIsIdempotent(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	h.OnConnect(a)
	h.OnConnect(b)

	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)

	// Pedido duplicado: a entrada antiga sai antes, então a NUNCA pareia
	// consigo mesmo; ele só volta a ser estacionado.
	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)
	req.Equal(1, h.matchmaker.Waiting())
	req.Zero(h.store.Len())

	// E o próximo a chegar pareia com ele normalmente.
	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeMatchFound)
	b.expect(t, message.TypeMatchFound)
	req.Equal(1, h.store.Len())
}

func TestFindMatch_WhileInMatchIsRejected(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	pairUp(t, h, a, b)

	// Em partida, FIND_MATCH não é roteado: erro para o remetente e a
	// partida segue intacta.
	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeError)
	b.expectNothing(t)
	req.Equal(1, h.store.Len())
	req.Zero(h.matchmaker.Waiting())
}

func TestFindMatch_CreationFailureReturnsBothToLobby(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	// Id fixo: a primeira sala ocupa o id e o pareamento seguinte colide.
	h.store.idGen = func() string { return "game-0-fixo" }
	_, err := h.store.Create(
		NewPlayerSession(newFakePeer("w")),
		NewPlayerSession(newFakePeer("b")),
	)
	req.NoError(err)

	a := newFakePeer("a")
	b := newFakePeer("b")
	h.OnConnect(a)
	h.OnConnect(b)

	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)

	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeError)
	b.expect(t, message.TypeError)

	// Nenhuma sala nova, ninguém preso na fila e os DOIS de volta ao
	// lobby, inclusive quem pediu, que poderia ter vindo pelo roteador
	// da fila (estado in-queue).
	req.Equal(1, h.store.Len())
	req.Zero(h.matchmaker.Waiting())
	req.Equal(state_LOBBY, h.sessions[a].State)
	req.Equal(state_LOBBY, h.sessions[b].State)

	// Os dois conseguem procurar partida de novo normalmente.
	h.store.idGen = newRoomID
	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)
	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeMatchFound)
	b.expect(t, message.TypeMatchFound)
}

func TestMove_FullScenario(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	// a (brancas) joga e2-e4: confirmação para a, lance para b, e a vez
	// passa para as pretas nos dois avisos.
	h.OnMessage(a, moveMsg(t, room, "e2", "e4"))

	var success, opp message.MovePayload
	decodePayload(t, a.expect(t, message.TypeMoveSuccess), &success)
	decodePayload(t, b.expect(t, message.TypeOpponentMove), &opp)
	req.Equal(chess.Square("e2"), success.From)
	req.Equal(chess.Square("e4"), success.To)
	req.False(success.IsWhiteTurn)
	req.Equal(success, opp)

	// a tenta um segundo lance antes das pretas: rejeitado só para a, o
	// log não muda e b não fica sabendo.
	h.OnMessage(a, moveMsg(t, room, "d2", "d4"))
	var invalid message.InvalidMovePayload
	decodePayload(t, a.expect(t, message.TypeInvalidMove), &invalid)
	req.Equal("It's not your turn.", invalid.Error)
	b.expectNothing(t)

	gr, ok := h.store.Get(room)
	req.True(ok)
	req.Len(gr.Moves(), 1)

	// b (pretas) responde e7-e5, aceito.
	h.OnMessage(b, moveMsg(t, room, "e7", "e5"))
	decodePayload(t, b.expect(t, message.TypeMoveSuccess), &success)
	decodePayload(t, a.expect(t, message.TypeOpponentMove), &opp)
	req.True(success.IsWhiteTurn)
	req.Equal(success, opp)
	req.Len(gr.Moves(), 2)
}

func TestMove_PromotionTagIsRelayed(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	h.OnMessage(a, network.Message{
		Type: "MOVE",
		Payload: rawPayload(t, map[string]string{
			"room":      room,
			"from":      "e7",
			"to":        "e8",
			"promotion": "q",
		}),
	})

	var opp message.MovePayload
	a.expect(t, message.TypeMoveSuccess)
	decodePayload(t, b.expect(t, message.TypeOpponentMove), &opp)
	req.Equal("q", opp.Promotion)
}

func TestMove_UnknownRoomIsIgnored(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	// Sala inexistente: sem estado para mutar, descarte silencioso.
	h.OnMessage(a, moveMsg(t, "game-0-inexistente", "e2", "e4"))
	a.expectNothing(t)
	b.expectNothing(t)

	gr, ok := h.store.Get(room)
	req.True(ok)
	req.Empty(gr.Moves())
}

func TestMove_NonParticipantIsRejected(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	roomAB := pairUp(t, h, a, b)

	c := newFakePeer("c")
	d := newFakePeer("d")
	pairUp(t, h, c, d)

	// c está em partida, mas aponta para a sala de a/b: só o aviso volta.
	h.OnMessage(c, moveMsg(t, roomAB, "e2", "e4"))
	c.expect(t, message.TypeError)
	a.expectNothing(t)
	b.expectNothing(t)
	d.expectNothing(t)

	gr, ok := h.store.Get(roomAB)
	req.True(ok)
	req.Empty(gr.Moves())
}

func TestMove_MalformedSquareIsRejected(t *testing.T) {
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	h.OnMessage(a, moveMsg(t, room, "z9", "e4"))
	a.expect(t, message.TypeInvalidMove)
	b.expectNothing(t)
}

func TestChat_RelaysOnlyToOpponent(t *testing.T) {
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	h.OnMessage(a, network.Message{
		Type:    "CHAT",
		Payload: rawPayload(t, map[string]string{"room": room, "message": "boa sorte!"}),
	})

	var chat message.ChatPayload
	decodePayload(t, b.expect(t, message.TypeChat), &chat)
	require.Equal(t, "opponent", chat.Sender)
	require.Equal(t, "boa sorte!", chat.Message)

	// Quem enviou nunca recebe eco.
	a.expectNothing(t)
}

func TestResign_OpponentWinsAndRoomIsRemoved(t *testing.T) {
	req := require.New(t)
	h, pub := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	// b (pretas) desiste: só a é notificado, com o vencedor calculado.
	h.OnMessage(b, network.Message{
		Type:    "RESIGN",
		Payload: rawPayload(t, map[string]string{"room": room}),
	})

	var over message.GameOverPayload
	decodePayload(t, a.expect(t, message.TypeGameOver), &over)
	req.Equal(chess.White, over.Winner)
	req.Equal(chess.ReasonResignation, over.Reason)
	b.expectNothing(t)

	req.Zero(h.store.Len())
	req.Len(pub.reports, 1)
	req.Equal(room, pub.reports[0].Room)
	req.Equal("white", pub.reports[0].Winner)
	req.Equal("resignation", pub.reports[0].Reason)

	// Ambos voltam ao lobby e podem procurar partida de novo.
	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)
	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeMatchFound)
	b.expect(t, message.TypeMatchFound)
}

func TestForfeit_IsIdempotentOnConcludedRoom(t *testing.T) {
	req := require.New(t)
	h, pub := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	gr, ok := h.store.Get(room)
	req.True(ok)
	blackSession := h.sessions[b]

	h.forfeit(gr, blackSession, chess.ReasonResignation)
	a.expect(t, message.TypeGameOver)

	// Segunda desistência/queda sobre a mesma sala: no-op completo.
	h.forfeit(gr, blackSession, chess.ReasonDisconnect)
	a.expectNothing(t)
	req.Len(pub.reports, 1)
}

func TestDisconnect_ForfeitsActiveGame(t *testing.T) {
	req := require.New(t)
	h, pub := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	// b cai no meio da partida: a vence por desconexão.
	h.OnDisconnect(b)

	var over message.GameOverPayload
	decodePayload(t, a.expect(t, message.TypeGameOver), &over)
	req.Equal(chess.White, over.Winner)
	req.Equal(chess.ReasonDisconnect, over.Reason)

	req.Zero(h.store.Len())
	req.Len(pub.reports, 1)
	req.Equal("disconnect", pub.reports[0].Reason)

	// Um lance de a referenciando a sala antiga morre sem efeito: a já
	// voltou ao lobby, então o comando nem é roteado.
	h.OnMessage(a, moveMsg(t, room, "e2", "e4"))
	a.expect(t, message.TypeError)
	req.Zero(h.store.Len())
}

func TestDisconnect_RemovesFromQueue(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	h.OnConnect(a)
	h.OnConnect(b)

	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)

	// a cai enquanto espera: some da fila, e b não pareia com fantasma.
	h.OnDisconnect(a)
	req.Zero(h.matchmaker.Waiting())

	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	b.expect(t, message.TypeSearchingMatch)
	req.Equal(1, h.matchmaker.Waiting())
}

func TestDisconnect_WithoutSessionIsNoOp(t *testing.T) {
	h, pub := newTestHandler(chess.NopRules{})

	// Um peer que nunca conectou (ou já foi limpo) não tem o que limpar.
	h.OnDisconnect(newFakePeer("ghost"))
	require.Empty(t, pub.reports)
}

func TestLeaveQueue_ReturnsToLobby(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	h.OnConnect(a)
	h.OnConnect(b)

	h.OnMessage(a, network.Message{Type: "FIND_MATCH"})
	a.expect(t, message.TypeSearchingMatch)

	h.OnMessage(a, network.Message{Type: "LEAVE_QUEUE"})
	a.expect(t, message.TypeLeftQueue)
	req.Zero(h.matchmaker.Waiting())

	// b chega depois: ninguém esperando, b é estacionado.
	h.OnMessage(b, network.Message{Type: "FIND_MATCH"})
	b.expect(t, message.TypeSearchingMatch)
}

// mateRules simula o colaborador de regras devolvendo xeque-mate assim que
// o histórico atinge o número de lances configurado.
type mateRules struct {
	afterPlies int
	winner     chess.Color
}

func (r mateRules) Evaluate(moves []chess.Move) chess.Verdict {
	if len(moves) >= r.afterPlies {
		return chess.Verdict{Over: true, Winner: r.winner, Reason: chess.ReasonCheckmate}
	}
	return chess.NoVerdict
}

func TestRulesEngineVerdict_ConcludesAndBroadcasts(t *testing.T) {
	req := require.New(t)
	h, pub := newTestHandler(mateRules{afterPlies: 1, winner: chess.White})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	h.OnMessage(a, moveMsg(t, room, "e2", "e4"))
	a.expect(t, message.TypeMoveSuccess)
	b.expect(t, message.TypeOpponentMove)

	// Veredito terminal: os DOIS recebem o anúncio, a sala some do store.
	var overA, overB message.GameOverPayload
	decodePayload(t, a.expect(t, message.TypeGameOver), &overA)
	decodePayload(t, b.expect(t, message.TypeGameOver), &overB)
	req.Equal(overA, overB)
	req.Equal(chess.White, overA.Winner)
	req.Equal(chess.ReasonCheckmate, overA.Reason)

	req.Zero(h.store.Len())
	req.Len(pub.reports, 1)
	req.Equal("checkmate", pub.reports[0].Reason)
	req.Equal(1, pub.reports[0].Plies)
}

// drawRules devolve empate imediato, para cobrir o caso sem vencedor.
type drawRules struct{}

func (drawRules) Evaluate(moves []chess.Move) chess.Verdict {
	if len(moves) > 0 {
		return chess.Verdict{Over: true, Reason: chess.ReasonDraw}
	}
	return chess.NoVerdict
}

func TestRulesEngineVerdict_DrawHasNoWinner(t *testing.T) {
	req := require.New(t)
	h, pub := newTestHandler(drawRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	room := pairUp(t, h, a, b)

	h.OnMessage(a, moveMsg(t, room, "e2", "e4"))
	a.expect(t, message.TypeMoveSuccess)
	b.expect(t, message.TypeOpponentMove)

	var over message.GameOverPayload
	decodePayload(t, a.expect(t, message.TypeGameOver), &over)
	req.Empty(over.Winner)
	req.Equal(chess.ReasonDraw, over.Reason)
	b.expect(t, message.TypeGameOver)

	req.Len(pub.reports, 1)
	req.Empty(pub.reports[0].Winner)
}

func TestExclusiveMembership_PairedPlayersAreInSingleRoom(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler(chess.NopRules{})

	a := newFakePeer("a")
	b := newFakePeer("b")
	pairUp(t, h, a, b)

	// Cada participante pertence a exatamente uma sala ativa.
	for _, p := range []*fakePeer{a, b} {
		count := 0
		h.store.EachWith(h.sessions[p], func(*GameRoom) { count++ })
		req.Equal(1, count, "peer %s", p.name)
	}
}
