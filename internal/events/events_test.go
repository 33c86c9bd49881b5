package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev := New("menu_item_created", map[string]any{"menuId": "m1"})
	assert.Equal(t, "menu_item_created", ev.Type())
	assert.Equal(t, "m1", ev["menuId"])
	assert.Contains(t, ev, "at")
}

func TestEncode(t *testing.T) {
	msg, err := encode(TopicCarts, "u1", New("cart_item_added", map[string]any{"quantity": 2}))
	require.NoError(t, err)
	assert.Equal(t, TopicCarts, msg.Topic)
	assert.Equal(t, []byte("u1"), msg.Key)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "cart_item_added", body["type"])
	assert.EqualValues(t, 2, body["quantity"])
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	_, err := encode(TopicMenu, "k", Event{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.Publish(context.Background(), TopicUsers, "k", New("x", nil)))
	require.NoError(t, p.Close())
}
