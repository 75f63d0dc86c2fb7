package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	WSURL     = "ws://localhost:5000/ws"
	RoomCount = 10  // Users are spread evenly across this many rooms.
	UserCount = 200 // ⚠️ Start small; bump once the relay holds up.
	MsgCount  = 20  // Messages per user
)

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func main() {
	log.Printf("🔥 STARTING STRESS TEST: %d users across %d rooms, %d messages each...", UserCount, RoomCount, MsgCount)
	var wg sync.WaitGroup

	for i := 0; i < UserCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runUser(id)
		}(i)
	}

	wg.Wait()
	log.Println("✅ LOAD TEST COMPLETE")
}

func runUser(id int) {
	user := fmt.Sprintf("u_%d", id)
	room := fmt.Sprintf("room_%d", id%RoomCount)

	conn, _, err := websocket.DefaultDialer.Dial(WSURL, nil)
	if err != nil {
		log.Printf("❌ WS Connect Fail [%s]: %v", user, err)
		return
	}
	defer conn.Close()

	// Drain server frames so the relay never sees us as a slow reader.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(envelope{Event: "join", Data: map[string]string{"username": user, "room": room}}); err != nil {
		log.Printf("❌ Join Fail [%s]: %v", user, err)
		return
	}

	for i := 0; i < MsgCount; i++ {
		msg := envelope{Event: "chat-message", Data: map[string]interface{}{
			"sender": user,
			"text":   fmt.Sprintf("LoadTest Msg %d from %s", i, user),
		}}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("❌ Send Fail [%s]: %v", user, err)
			break
		}
		// Small sleep to prevent instant localhost bottleneck (simulate real network)
		time.Sleep(10 * time.Millisecond)
	}
	log.Printf("✅ %s finished sending %d msgs", user, MsgCount)
}
