package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
)

func TestEventJSON(t *testing.T) {
	ev := Event{
		BuildID:     "b1",
		Output:      "/out/index.md",
		Fingerprint: "fp",
		Mode:        "grouped",
		Files:       3,
		Timestamp:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"build_id": "b1",
		"output": "/out/index.md",
		"fingerprint": "fp",
		"unchanged": false,
		"mode": "grouped",
		"files": 3,
		"timestamp": "2024-05-01T12:00:00Z"
	}`, string(data))
}

func TestConnectFailureIsNotifyError(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotify))

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.SeverityError, classified.Severity())
	url, ok := classified.Context().GetString("url")
	require.True(t, ok)
	assert.Equal(t, "nats://127.0.0.1:1", url)
}

func TestNATSPublisherImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NATSPublisher)(nil)
}

type published struct {
	subject string
	data    []byte
}

// natsStub speaks enough of the NATS client protocol for connect, publish,
// flush and drain: INFO on accept, PONG for every PING, PUB payload capture.
func natsStub(t *testing.T) (string, <-chan published) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	pubs := make(chan published, 8)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveNATS(conn, pubs)
		}
	}()
	return "nats://" + ln.Addr().String(), pubs
}

func serveNATS(conn net.Conn, pubs chan<- published) {
	defer func() { _ = conn.Close() }()
	if _, err := fmt.Fprint(conn, `INFO {"server_id":"stub","version":"2.10.0","proto":1,"max_payload":1048576}`+"\r\n"); err != nil {
		return
	}
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "PING"):
			if _, err := io.WriteString(conn, "PONG\r\n"); err != nil {
				return
			}
		case strings.HasPrefix(line, "PUB "):
			fields := strings.Fields(line)
			n, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return
			}
			buf := make([]byte, n+2)
			if _, err := io.ReadFull(r, buf); err != nil {
				return
			}
			pubs <- published{subject: fields[1], data: buf[:n]}
		}
	}
}

func TestPublishWithoutDeadline(t *testing.T) {
	url, pubs := natsStub(t)
	pub, err := Connect(url, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })
	assert.Equal(t, DefaultSubject, pub.Subject())

	ev := Event{BuildID: "b1", Output: "/out/index.md", Fingerprint: "fp", Mode: "flat", Files: 2}
	require.NoError(t, pub.Publish(context.Background(), ev))

	select {
	case msg := <-pubs:
		assert.Equal(t, DefaultSubject, msg.subject)
		var got Event
		require.NoError(t, json.Unmarshal(msg.data, &got))
		assert.Equal(t, "b1", got.BuildID)
		assert.Equal(t, 2, got.Files)
		assert.False(t, got.Timestamp.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("event not received")
	}
}

func TestPublishCustomSubjectWithDeadline(t *testing.T) {
	url, pubs := natsStub(t)
	pub, err := Connect(url, "docs.api.built")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, pub.Publish(ctx, Event{BuildID: "b2"}))

	select {
	case msg := <-pubs:
		assert.Equal(t, "docs.api.built", msg.subject)
	case <-time.After(5 * time.Second):
		t.Fatal("event not received")
	}
}
