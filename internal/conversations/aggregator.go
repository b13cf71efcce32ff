// Package conversations derives per-viewer views from the authoritative
// message and reaction logs. Nothing here is persisted: views are recomputed
// in full on every refresh trigger, which keeps them drift-free under
// missed or reordered realtime events.
package conversations

import (
	"sort"

	"messaging-service/internal/models"
)

// Aggregate folds the viewer's non-deleted messages into one summary per
// counterpart. The result is independent of input order: the latest message
// is picked by (created_at, id) and unread counting is a plain fold.
// Summaries are ordered most-recent activity first.
func Aggregate(viewerID int, msgs []models.Message) []models.ConversationSummary {
	type group struct {
		last   models.Message
		unread int
	}
	groups := make(map[int]*group)

	for _, m := range msgs {
		if m.Deleted {
			continue
		}
		counterpart := m.SenderID
		if counterpart == viewerID {
			counterpart = m.ReceiverID
		}

		g, ok := groups[counterpart]
		if !ok {
			g = &group{last: m}
			groups[counterpart] = g
		} else if newer(m, g.last) {
			g.last = m
		}
		if m.ReceiverID == viewerID && !m.Read {
			g.unread++
		}
	}

	summaries := make([]models.ConversationSummary, 0, len(groups))
	for counterpart, g := range groups {
		summaries = append(summaries, models.ConversationSummary{
			CounterpartID: counterpart,
			LastMessage:   g.last.Content,
			LastMessageAt: g.last.CreatedAt,
			UnreadCount:   g.unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].LastMessageAt.Equal(summaries[j].LastMessageAt) {
			return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
		}
		return summaries[i].CounterpartID < summaries[j].CounterpartID
	})
	return summaries
}

// newer reports whether a succeeds b in the log ordering, id as tie-break.
func newer(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
