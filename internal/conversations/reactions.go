package conversations

import (
	"sort"

	"messaging-service/internal/models"
)

// GroupReactions folds a message's reactions into per-emoji display groups:
// member count, reactor ids, and whether the viewer is among them. Groups
// are ordered by descending count, emoji as tie-break, so rendering is
// stable across recomputations.
func GroupReactions(viewerID int, reactions []models.Reaction) []models.ReactionGroup {
	byEmoji := make(map[string]*models.ReactionGroup)
	order := make([]string, 0)

	for _, reaction := range reactions {
		g, ok := byEmoji[reaction.Emoji]
		if !ok {
			g = &models.ReactionGroup{Emoji: reaction.Emoji}
			byEmoji[reaction.Emoji] = g
			order = append(order, reaction.Emoji)
		}
		g.Count++
		g.UserIDs = append(g.UserIDs, reaction.UserID)
		if reaction.UserID == viewerID {
			g.ViewerReacted = true
		}
	}

	groups := make([]models.ReactionGroup, 0, len(order))
	for _, emoji := range order {
		groups = append(groups, *byEmoji[emoji])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Emoji < groups[j].Emoji
	})
	return groups
}

// GroupReactionsByMessage buckets a batch of reactions per message and
// groups each bucket, for annotating a whole thread in one pass.
func GroupReactionsByMessage(viewerID int, reactions []models.Reaction) map[int][]models.ReactionGroup {
	byMessage := make(map[int][]models.Reaction)
	for _, reaction := range reactions {
		byMessage[reaction.MessageID] = append(byMessage[reaction.MessageID], reaction)
	}

	grouped := make(map[int][]models.ReactionGroup, len(byMessage))
	for messageID, list := range byMessage {
		grouped[messageID] = GroupReactions(viewerID, list)
	}
	return grouped
}
