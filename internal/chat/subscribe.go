package chat

import (
	"go.uber.org/zap"

	"github.com/xaenox/vivaha-bot/internal/models"
)

const subscriberBuffer = 32

type subscriber struct {
	ch chan models.Turn
}

// Subscribe returns a channel that receives every turn appended to the
// user's conversation, in append order. The returned func unsubscribes and
// closes the channel. A subscriber that falls more than subscriberBuffer
// turns behind starts losing turns.
func (s *Service) Subscribe(userID string) (<-chan models.Turn, func()) {
	sub := &subscriber{ch: make(chan models.Turn, subscriberBuffer)}

	s.mu.Lock()
	s.subscribers[userID] = append(s.subscribers[userID], sub)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		subs := s.subscribers[userID]
		for i, existing := range subs {
			if existing == sub {
				s.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				return
			}
		}
	}
	return sub.ch, cancel
}

// publish delivers turns to the user's subscribers. Holding the lock for the
// whole delivery keeps turns from interleaving out of append order.
func (s *Service) publish(userID string, turns ...models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscribers[userID] {
		for _, turn := range turns {
			select {
			case sub.ch <- turn:
			default:
				s.logger.Warn("Dropping turn for slow subscriber",
					zap.String("user_id", userID),
					zap.String("turn_id", turn.ID))
			}
		}
	}
}
