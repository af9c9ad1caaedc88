package handlers

import (
	"bytes"
	"context"

	"github.com/eatmoreapple/openwechat"

	"github.com/adinKent/pharaoh/internal/command"
	"github.com/adinKent/pharaoh/internal/trace"
)

// Handler forwards chat text to the command parser and sends whatever it
// produces. A nil reply means the bot stays silent.
type Handler struct {
	Parser *command.Parser
}

func New(parser *command.Parser) *Handler {
	return &Handler{Parser: parser}
}

// HandleMessage processes one inbound message. Only group text messages are
// considered; everything else is ignored.
func (h *Handler) HandleMessage(msg *openwechat.Message) {
	if !msg.IsText() || !msg.IsSendByGroup() {
		return
	}

	ctx := trace.With(context.Background(), trace.New())
	reply := h.Parser.Parse(ctx, msg.Content)
	if reply == nil {
		return
	}

	if len(reply.ImagePNG) > 0 {
		if _, err := msg.ReplyImage(bytes.NewReader(reply.ImagePNG)); err == nil {
			return
		}
		trace.Logf(ctx, "handlers: image reply failed, falling back to text")
	}
	if reply.Text != "" {
		if _, err := msg.ReplyText(reply.Text); err != nil {
			trace.Logf(ctx, "handlers: text reply failed: %v", err)
		}
	}
}
