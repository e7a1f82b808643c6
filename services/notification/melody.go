package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/olahol/melody"
)

// client -> server event names that are rebroadcast to every observer
var relayed = map[string]string{
	"room_status_update": EventRoomStatusChanged,
	"lock_status_update": EventLockStatusChanged,
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	s := &MelodyService{m: m}
	if m != nil {
		m.HandleConnect(func(sess *melody.Session) {
			log.Printf("🔌 websocket connected: %s", sess.Request.RemoteAddr)
		})
		m.HandleDisconnect(func(sess *melody.Session) {
			log.Printf("🔌 websocket disconnected: %s", sess.Request.RemoteAddr)
		})
		m.HandleMessage(func(sess *melody.Session, msg []byte) {
			if err := s.Relay(msg); err != nil {
				log.Printf("⚠️ websocket relay from %s: %v", sess.Request.RemoteAddr, err)
			}
		})
	}
	return s
}

func (s *MelodyService) Publish(_ context.Context, evt Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.Event, err)
	}
	return s.m.Broadcast(b)
}

// Relay rebroadcasts a client status update under its server event name.
// Unknown events are ignored.
func (s *MelodyService) Relay(msg []byte) error {
	var in struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg, &in); err != nil {
		return fmt.Errorf("decode client message: %w", err)
	}
	out, ok := relayed[in.Event]
	if !ok {
		return nil
	}
	return s.Publish(context.Background(), Event{Event: out, Data: in.Data})
}

func (s *MelodyService) Close() error {
	if s.m == nil {
		return nil
	}
	return s.m.Close()
}
