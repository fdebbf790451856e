package http

import (
	"encoding/json"

	"github.com/Shoyas/chatline-server/internal/core"
	"github.com/Shoyas/chatline-server/internal/proto"
)

// inboundToCommand maps a wire event onto a hub command. A nil command with
// a nil error means the event was dropped: typing and ack events with
// missing fields are ignored silently, while message:send is always
// forwarded so validation failures come back as message:error with the
// client's correlation id.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, err
		}
		if join.UserID == "" {
			return nil, nil
		}
		return &core.Command{
			Kind:    core.CommandJoin,
			UserID:  join.UserID,
			OtherID: join.OtherID,
		}, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, err
		}
		if typing.Room == "" || typing.From == "" {
			return nil, nil
		}
		return &core.Command{
			Kind:     core.CommandTyping,
			Room:     typing.Room,
			From:     typing.From,
			IsTyping: typing.IsTyping,
		}, nil
	case proto.InboundTypeSend:
		var send proto.SendData
		if err := json.Unmarshal(inbound.Data, &send); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:   core.CommandSendMessage,
			TempID: send.TempID,
			From:   send.From,
			To:     send.To,
			Text:   send.Text,
		}, nil
	case proto.InboundTypeReceived:
		var ack proto.AckData
		if err := json.Unmarshal(inbound.Data, &ack); err != nil {
			return nil, err
		}
		if ack.ID == "" || ack.By == "" {
			return nil, nil
		}
		return &core.Command{
			Kind:      core.CommandDelivered,
			MessageID: ack.ID,
			By:        ack.By,
		}, nil
	case proto.InboundTypeRead:
		var ack proto.AckData
		if err := json.Unmarshal(inbound.Data, &ack); err != nil {
			return nil, err
		}
		if ack.ID == "" || ack.By == "" {
			return nil, nil
		}
		return &core.Command{
			Kind:      core.CommandRead,
			MessageID: ack.ID,
			By:        ack.By,
		}, nil
	default:
		// Unknown event types are ignored.
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPresenceUpdate:
		data := proto.PresenceData{
			UserID: event.Presence.UserID,
			Online: event.Presence.Online,
		}
		if event.Presence.LastSeenAt > 0 {
			ts := event.Presence.LastSeenAt
			data.LastSeenAt = &ts
		}
		return proto.Outbound{Type: proto.OutboundTypePresence, Data: data}
	case core.EventTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: proto.TypingData{
				Room:     event.Room,
				From:     event.From,
				IsTyping: event.IsTyping,
			},
		}
	case core.EventMessageAck:
		return proto.Outbound{
			Type: proto.OutboundTypeAck,
			Data: proto.AckResponse{
				TempID: event.TempID,
				ID:     event.Message.ID,
				SentAt: event.Message.SentAt,
			},
		}
	case core.EventNewMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeNew,
			Data: messageData(event.Message),
		}
	case core.EventMessageDelivered:
		return proto.Outbound{
			Type: proto.OutboundTypeDelivered,
			Data: proto.AckData{ID: event.MessageID, By: event.By},
		}
	case core.EventMessageRead:
		return proto.Outbound{
			Type: proto.OutboundTypeRead,
			Data: proto.AckData{ID: event.MessageID, By: event.By},
		}
	case core.EventError:
		msg := "unknown error"
		if event.Error != nil {
			msg = event.Error.Message
		}
		return proto.Outbound{
			Type: proto.OutboundTypeError,
			Data: proto.ErrorData{TempID: event.TempID, Error: msg},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError}
	}
}

func messageData(m core.Message) proto.MessageData {
	return proto.MessageData{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Text:        m.Text,
		SentAt:      m.SentAt,
		DeliveredTo: m.DeliveredTo,
		ReadBy:      m.ReadBy,
	}
}
