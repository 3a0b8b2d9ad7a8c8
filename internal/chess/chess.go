package chess

// Color é o papel fixo de um participante na partida. Brancas sempre fazem
// o primeiro lance.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent retorna a cor adversária.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Square é uma casa do tabuleiro em notação algébrica, ex: "e2".
type Square string

// ValidSquare verifica o formato da casa: coluna a-h, linha 1-8.
// Nada além do formato é verificado; legalidade é assunto do RulesEngine.
func ValidSquare(s Square) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// Move é um lance aplicado: casa de origem, casa de destino e a tag opcional
// de promoção ("q", "r", "b", "n"). O coordenador trata o lance como um token
// opaco; ele nunca interpreta o conteúdo além do turno de quem o enviou.
type Move struct {
	From      Square
	To        Square
	Promotion string
}

// TurnAt deriva de quem é a vez a partir da quantidade de lances já aplicados.
// Com contagem par é a vez das brancas. O turno NUNCA é armazenado em campo
// próprio: ele é sempre uma função pura do tamanho do histórico, o que elimina
// qualquer chance de um flag de turno divergir do log de lances.
func TurnAt(plies int) Color {
	if plies%2 == 0 {
		return White
	}
	return Black
}
