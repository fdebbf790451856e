package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Shoyas/chatline-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "nasir", "user id to join as")
	other := flag.String("other", "samin", "peer user id for the thread")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{UserID: *user, OtherID: *other}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeSend, proto.SendData{
		TempID: "smoke-1",
		From:   *user,
		To:     *other,
		Text:   *text,
	}); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}
		fmt.Printf("received: type=%s data=%s\n", outbound.Type, string(raw))

		switch outbound.Type {
		case proto.OutboundTypeAck:
			var ack proto.AckResponse
			if err := json.Unmarshal(raw, &ack); err != nil {
				return fmt.Errorf("unmarshal ack: %w", err)
			}
			fmt.Printf("ack: tempId=%s id=%s sentAt=%d\n", ack.TempID, ack.ID, ack.SentAt)
		case proto.OutboundTypeNew:
			var msg proto.MessageData
			if err := json.Unmarshal(raw, &msg); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("message: from=%s to=%s text=%q\n", msg.SenderID, msg.RecipientID, msg.Text)
			return nil
		case proto.OutboundTypeError:
			var werr proto.ErrorData
			if err := json.Unmarshal(raw, &werr); err == nil {
				return fmt.Errorf("server rejected message: %s", werr.Error)
			}
			return fmt.Errorf("server error")
		default:
			// keep looping until the broadcast message arrives
		}
	}
}
