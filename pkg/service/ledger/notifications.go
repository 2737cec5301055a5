package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
)

// NotificationCounts groups the caller's notifications by category and type.
type NotificationCounts struct {
	Unread     int                                 `json:"unread"`
	ByCategory map[ledger.NotificationCategory]int `json:"by_category"`
	ByType     map[ledger.NotificationType]int     `json:"by_type"`
}

// AddNotification stores a notification for the caller. It is always
// stored unread and stamped with the current time.
func (s *Service) AddNotification(
	ctx context.Context,
	caller domain.Caller,
	n ledger.Notification,
) (added ledger.Notification, err error) {
	err = s.mutate(ctx, caller, "AddNotification", func(rec *ledger.Record, now time.Time) error {
		added, err = rec.AddNotification(n, now)
		return err
	})
	return added, err
}

// ListNotifications returns the caller's notifications, optionally for one
// category; read ones are included only when showRead is set.
func (s *Service) ListNotifications(
	ctx context.Context,
	caller domain.Caller,
	category string,
	showRead bool,
) ([]ledger.Notification, error) {
	var cat ledger.NotificationCategory
	if category != "" {
		c, err := ledger.ParseNotificationCategory(category)
		if err != nil {
			return nil, err
		}
		cat = c
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	return rec.ListNotifications(cat, showRead), nil
}

func (s *Service) UnreadNotifications(ctx context.Context, caller domain.Caller) ([]ledger.Notification, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	return rec.UnreadNotifications(), nil
}

func (s *Service) NotificationsByType(ctx context.Context, caller domain.Caller, typ string) ([]ledger.Notification, error) {
	t, err := ledger.ParseNotificationType(typ)
	if err != nil {
		return nil, err
	}
	rec, err := s.view(ctx, caller)
	if err != nil {
		return nil, err
	}
	return rec.NotificationsByType(t), nil
}

func (s *Service) UnreadCount(ctx context.Context, caller domain.Caller) (int, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return 0, err
	}
	return rec.UnreadCount(), nil
}

func (s *Service) NotificationCounts(ctx context.Context, caller domain.Caller) (NotificationCounts, error) {
	rec, err := s.view(ctx, caller)
	if err != nil {
		return NotificationCounts{}, err
	}
	byCat, byType := rec.NotificationCounts()
	return NotificationCounts{Unread: rec.UnreadCount(), ByCategory: byCat, ByType: byType}, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, caller domain.Caller, id uint64) error {
	return s.mutate(ctx, caller, "MarkNotificationRead", func(rec *ledger.Record, _ time.Time) error {
		return rec.MarkNotificationRead(id)
	})
}

// MarkAllNotificationsRead marks every notification read and returns how
// many changed.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, caller domain.Caller) (n int, err error) {
	err = s.mutate(ctx, caller, "MarkAllNotificationsRead", func(rec *ledger.Record, _ time.Time) error {
		n = rec.MarkAllNotificationsRead()
		return nil
	})
	return n, err
}

func (s *Service) DeleteNotification(ctx context.Context, caller domain.Caller, id uint64) error {
	return s.mutate(ctx, caller, "DeleteNotification", func(rec *ledger.Record, _ time.Time) error {
		return rec.DeleteNotification(id)
	})
}
