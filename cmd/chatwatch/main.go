// Command chatwatch joins a chat group over WebSocket, prints every event
// the server pushes and posts each line read from stdin as a message.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

type event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type message struct {
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

func main() {
	host := flag.String("host", "localhost:8375", "API server host")
	group := flag.String("group", "building-a", "Chat group id")
	sender := flag.String("sender", "chatwatch", "Display name for posted messages")
	token := flag.String("token", "", "Optional bearer token")
	flag.Parse()

	u := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/api/ws/chat/" + url.PathEscape(*group),
		RawQuery: url.Values{"sender": {*sender}}.Encode(),
	}

	header := make(map[string][]string)
	if *token != "" {
		header["Authorization"] = []string{"Bearer " + *token}
	}

	c, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatalf("Dial %s failed: %v", u.String(), err)
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = c.Close() }()
	log.Printf("Connected to %s as %s", u.String(), *sender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				log.Printf("Connection closed: %v", err)
				return
			}
			printEvent(raw)
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case line, ok := <-lines:
			if !ok {
				_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if line == "" {
				continue
			}
			if err := c.WriteJSON(map[string]string{"content": line}); err != nil {
				log.Printf("Send failed: %v", err)
				return
			}
		}
	}
}

func printEvent(raw []byte) {
	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		fmt.Printf("? %s\n", raw)
		return
	}
	if ev.Type == "message" {
		var m message
		if err := json.Unmarshal(ev.Payload, &m); err == nil {
			fmt.Printf("[%s] %s\n", m.Sender, m.Content)
			return
		}
	}
	fmt.Printf("%s %s\n", ev.Type, ev.Payload)
}
