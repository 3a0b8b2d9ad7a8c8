package chess

// Reason descreve por que uma partida terminou.
type Reason string

const (
	ReasonResignation Reason = "resignation"
	ReasonDisconnect  Reason = "disconnect"
	ReasonCheckmate   Reason = "checkmate"
	ReasonDraw        Reason = "draw"
)

// Verdict é o resultado de uma avaliação do RulesEngine sobre o histórico
// de lances. Winner fica vazio quando a partida empata.
type Verdict struct {
	Over   bool
	Winner Color
	Reason Reason
}

// NoVerdict indica que a partida continua.
var NoVerdict = Verdict{}

// RulesEngine é o colaborador externo que conhece as regras do xadrez.
// O coordenador nunca calcula xeque-mate ou empate por conta própria: depois
// de cada lance aceito ele consulta o engine, e só transmite o veredito.
type RulesEngine interface {
	Evaluate(moves []Move) Verdict
}

// NopRules é o engine padrão: nunca encerra uma partida. Com ele, os únicos
// caminhos de término são desistência e desconexão, exatamente como no modo
// em que a legalidade dos lances fica a cargo dos clientes.
type NopRules struct{}

func (NopRules) Evaluate([]Move) Verdict { return NoVerdict }
