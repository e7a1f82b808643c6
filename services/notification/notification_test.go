package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"smart-hotel/models"

	"github.com/olahol/melody"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	err    error
}

func (r *recordingSink) Publish(_ context.Context, evt Event) error {
	r.events = append(r.events, evt)
	return r.err
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("broker down")}
	c := &recordingSink{}

	room := models.Room{ID: 7, RoomNumber: "007", Status: models.RoomFree}
	err := Multi{a, nil, b, c}.Publish(context.Background(), RoomStatusChanged(room))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Len(t, c.events, 1, "a failing sink does not stop the rest")
	assert.Equal(t, EventRoomStatusChanged, c.events[0].Event)
}

func TestNotify_SwallowsErrors(t *testing.T) {
	s := &recordingSink{err: errors.New("nope")}
	Notify(context.Background(), s, Event{Event: EventRoomStatusChanged})
	Notify(context.Background(), nil, Event{Event: EventRoomStatusChanged})
	assert.Len(t, s.events, 1)
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}

func TestEnvelopeShape(t *testing.T) {
	code := "123456"
	b, err := json.Marshal(RoomStatusChanged(models.Room{ID: 1, RoomNumber: "101", Status: models.RoomOccupied, SmartLockCode: &code}))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "room_status_changed", got["event"])
	data := got["data"].(map[string]interface{})
	assert.Equal(t, "101", data["room_number"])
	assert.Equal(t, "Occupied", data["status"])
	assert.Equal(t, "123456", data["smart_lock_code"])
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "room.status_changed", RoutingKey(EventRoomStatusChanged))
	assert.Equal(t, "lock.status_changed", RoutingKey(EventLockStatusChanged))
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	closed        bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "hotel.events"}

	err := p.Publish(context.Background(), RoomStatusChanged(models.Room{RoomNumber: "101", Status: models.RoomFree}))
	require.NoError(t, err)

	assert.Equal(t, "hotel.events", ch.exchange)
	assert.Equal(t, "room.status_changed", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var evt map[string]interface{}
	require.NoError(t, json.Unmarshal(ch.msg.Body, &evt))
	assert.Equal(t, "room_status_changed", evt["event"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestMelodyService(t *testing.T) {
	m := melody.New()
	s := NewMelodyService(m)
	// the hub opens asynchronously
	require.Eventually(t, func() bool { return !m.IsClosed() }, time.Second, time.Millisecond)

	assert.NoError(t, s.Publish(context.Background(), RoomStatusChanged(models.Room{RoomNumber: "101"})))
	assert.NoError(t, s.Relay([]byte(`{"event":"room_status_update","data":{"room_number":"101"}}`)))
	assert.NoError(t, s.Relay([]byte(`{"event":"chat","data":"hi"}`)), "unknown events are ignored")
	assert.Error(t, s.Relay([]byte(`not json`)))

	require.NoError(t, s.Close())
}

func TestMelodyService_NilHub(t *testing.T) {
	s := NewMelodyService(nil)
	assert.Error(t, s.Publish(context.Background(), Event{}))
	assert.NoError(t, s.Close())
}
