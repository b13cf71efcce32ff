package conversations

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/models"
)

func msgAt(id, sender, receiver int, content string, at time.Time, read bool) models.Message {
	return models.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		Read:       read,
		CreatedAt:  at,
	}
}

func TestAggregateEmptyLog(t *testing.T) {
	summaries := Aggregate(1, nil)
	assert.Empty(t, summaries)
}

func TestAggregateSingleConversation(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		msgAt(1, 2, 1, "Hi", t0, false),
	}

	summaries := Aggregate(1, msgs)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].CounterpartID)
	assert.Equal(t, "Hi", summaries[0].LastMessage)
	assert.Equal(t, 1, summaries[0].UnreadCount)
}

func TestAggregateUnreadCountsOnlyInbound(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		msgAt(1, 1, 2, "sent by viewer, unread by counterpart", t0, false),
		msgAt(2, 2, 1, "inbound unread", t0.Add(time.Minute), false),
		msgAt(3, 2, 1, "inbound read", t0.Add(2*time.Minute), true),
	}

	summaries := Aggregate(1, msgs)
	require.Len(t, summaries, 1)
	// Only the unread message addressed to the viewer counts.
	assert.Equal(t, 1, summaries[0].UnreadCount)
	assert.Equal(t, "inbound read", summaries[0].LastMessage)
}

func TestAggregateOrderIndependent(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		msgAt(1, 2, 1, "a", t0, false),
		msgAt(2, 1, 2, "b", t0.Add(time.Minute), false),
		msgAt(3, 3, 1, "c", t0.Add(2*time.Minute), false),
		msgAt(4, 1, 3, "d", t0.Add(3*time.Minute), true),
		msgAt(5, 2, 1, "e", t0.Add(4*time.Minute), false),
	}

	expected := Aggregate(1, msgs)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.Message, len(msgs))
		copy(shuffled, msgs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, expected, Aggregate(1, shuffled))
	}
}

func TestAggregateTieBreaksOnID(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		msgAt(9, 2, 1, "first by id order", t0, true),
		msgAt(10, 2, 1, "last by id order", t0, true),
	}

	summaries := Aggregate(1, msgs)
	require.Len(t, summaries, 1)
	assert.Equal(t, "last by id order", summaries[0].LastMessage)
}

func TestAggregateSkipsDeletedMessages(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deleted := msgAt(2, 2, 1, "gone", t0.Add(time.Hour), false)
	deleted.Deleted = true
	msgs := []models.Message{
		msgAt(1, 2, 1, "visible", t0, true),
		deleted,
	}

	summaries := Aggregate(1, msgs)
	require.Len(t, summaries, 1)
	assert.Equal(t, "visible", summaries[0].LastMessage)
	assert.Equal(t, 0, summaries[0].UnreadCount)
}

func TestAggregateOrdersByRecentActivity(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		msgAt(1, 2, 1, "older thread", t0, true),
		msgAt(2, 3, 1, "newer thread", t0.Add(time.Hour), true),
	}

	summaries := Aggregate(1, msgs)
	require.Len(t, summaries, 2)
	assert.Equal(t, 3, summaries[0].CounterpartID)
	assert.Equal(t, 2, summaries[1].CounterpartID)
}
