package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	ev := LoginEvent{
		Username:  "alice",
		Outcome:   OutcomeSuccess,
		RemoteIP:  "10.0.0.1",
		RequestID: "01HZX",
		At:        time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	assert.Equal(t, "[2025-03-04T05:06:07Z] login success | username=\"alice\" | ip=10.0.0.1 | request_id=01HZX\n", FormatLine(ev))

	ev.RemoteIP, ev.RequestID = "", ""
	assert.Contains(t, FormatLine(ev), "ip=- | request_id=-")
}

func TestHandleMessage(t *testing.T) {
	body, err := json.Marshal(LoginEvent{Username: "bob", Outcome: OutcomePasswordFail, At: time.Unix(0, 0)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, handleMessage(body, &buf))
	assert.Contains(t, buf.String(), "login password_error")
	assert.Contains(t, buf.String(), `username="bob"`)
}

func TestHandleMessage_BadJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, handleMessage([]byte("{"), &buf))
	assert.Zero(t, buf.Len())
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Minute))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}
