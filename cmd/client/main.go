// cmd/client/main.go
//
// Cliente de terminal para o servidor de xadrez. Sem tabuleiro: ele só envia
// eventos e imprime as notificações, o que basta para jogar por notação
// ("e2e4", "e7e8q") e para exercitar o servidor de ponta a ponta.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"

	"xadrez/internal/network"
	"xadrez/internal/session/message"
)

// Estado local mínimo: a sala atual e a minha cor, preenchidos no MATCH_FOUND.
var (
	currentRoom string
	myColor     string
)

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "localhost:3001"
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Conectando em %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Erro ao conectar: %v", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go readLoop(conn, done)

	printHelp()

	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- strings.TrimSpace(scanner.Text())
		}
		close(input)
	}()

	for {
		select {
		case <-done:
			log.Println("Conexão encerrada pelo servidor.")
			return
		case <-interrupt:
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case line, ok := <-input:
			if !ok {
				return
			}
			if line == "quit" {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := handleCommand(conn, line); err != nil {
				log.Printf("Erro ao enviar: %v", err)
				return
			}
		}
	}
}

func printHelp() {
	fmt.Println("Comandos:")
	fmt.Println("  play            procurar partida")
	fmt.Println("  leave           sair da fila")
	fmt.Println("  e2e4 / e7e8q    jogar um lance (com promoção opcional)")
	fmt.Println("  /c <texto>      mandar chat para o oponente")
	fmt.Println("  resign          desistir")
	fmt.Println("  quit            sair")
}

// handleCommand traduz a linha digitada para uma mensagem do protocolo.
func handleCommand(conn *websocket.Conn, line string) error {
	send := func(msgType string, payload any) error {
		msg := network.Message{Type: msgType}
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			msg.Payload = data
		}
		return conn.WriteJSON(msg)
	}

	switch {
	case line == "play":
		return send("FIND_MATCH", nil)

	case line == "leave":
		return send("LEAVE_QUEUE", nil)

	case line == "resign":
		return send("RESIGN", map[string]string{"room": currentRoom})

	case strings.HasPrefix(line, "/c "):
		return send("CHAT", map[string]string{
			"room":    currentRoom,
			"message": strings.TrimPrefix(line, "/c "),
		})

	case len(line) == 4 || len(line) == 5:
		// Lance em notação "origem destino [promoção]", ex: e2e4, e7e8q.
		payload := map[string]string{
			"room": currentRoom,
			"from": line[0:2],
			"to":   line[2:4],
		}
		if len(line) == 5 {
			payload["promotion"] = line[4:5]
		}
		return send("MOVE", payload)

	default:
		fmt.Println("Comando não reconhecido.")
		printHelp()
		return nil
	}
}

// readLoop imprime cada notificação do servidor de forma legível.
func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case message.TypeSearchingMatch:
			fmt.Println(">> Procurando partida...")

		case message.TypeLeftQueue:
			fmt.Println(">> Você saiu da fila.")

		case message.TypeMatchFound:
			var p message.MatchFoundPayload
			json.Unmarshal(msg.Payload, &p)
			currentRoom = p.Room
			myColor = string(p.Color)
			fmt.Printf(">> Partida encontrada! Você joga de %s na sala %s.\n", myColor, currentRoom)

		case message.TypeMoveSuccess:
			var p message.MovePayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf(">> Lance confirmado: %s-%s (vez das brancas: %v)\n", p.From, p.To, p.IsWhiteTurn)

		case message.TypeOpponentMove:
			var p message.MovePayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf(">> Oponente jogou: %s-%s (vez das brancas: %v)\n", p.From, p.To, p.IsWhiteTurn)

		case message.TypeInvalidMove:
			var p message.InvalidMovePayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf(">> Lance rejeitado: %s\n", p.Error)

		case message.TypeChat:
			var p message.ChatPayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf("[%s] %s\n", p.Sender, p.Message)

		case message.TypeGameOver:
			var p message.GameOverPayload
			json.Unmarshal(msg.Payload, &p)
			if p.Winner == "" {
				fmt.Printf(">> Fim de jogo: empate (%s).\n", p.Reason)
			} else {
				fmt.Printf(">> Fim de jogo: %s vence (%s).\n", p.Winner, p.Reason)
			}
			currentRoom = ""

		case message.TypeError:
			var p message.ErrorPayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf(">> Erro: %s\n", p.Error)

		default:
			fmt.Printf(">> %s: %s\n", msg.Type, string(msg.Payload))
		}
	}
}
