package parser

import (
	"context"

	"github.com/jptrs93/packetgen/internal/ir"
)

// Source produces the packet definitions for a run, in registration order.
type Source interface {
	Load(ctx context.Context, inputs []string) ([]ir.MessageType, error)
}

// pendingMessage is a message whose identifier may still be unassigned.
type pendingMessage struct {
	msg   ir.MessageType
	hasID bool
}

// assignIDs gives every message without an explicit identifier the next free
// number counting from zero. Explicit identifiers are kept as they are; clashes
// between them are not checked.
func assignIDs(pending []pendingMessage) []ir.MessageType {
	taken := make(map[int]bool)
	for _, p := range pending {
		if p.hasID {
			taken[p.msg.ID] = true
		}
	}
	next := 0
	out := make([]ir.MessageType, 0, len(pending))
	for _, p := range pending {
		msg := p.msg
		if !p.hasID {
			for taken[next] {
				next++
			}
			msg.ID = next
			taken[next] = true
		}
		out = append(out, msg)
	}
	return out
}
