package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// NotificationType is the severity of a notification.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationDanger  NotificationType = "danger"
	NotificationInfo    NotificationType = "info"
)

// ParseNotificationType returns the notification type named by s.
func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(strings.ToLower(strings.TrimSpace(s))); t {
	case NotificationSuccess, NotificationWarning, NotificationDanger, NotificationInfo:
		return t, nil
	}
	return "", domain.Validationf("invalid notification type %q", s)
}

// NotificationCategory is the area of the ledger a notification is about.
type NotificationCategory string

const (
	CategoryBudget      NotificationCategory = "budget"
	CategoryGoal        NotificationCategory = "goal"
	CategoryTransaction NotificationCategory = "transaction"
	CategoryMarket      NotificationCategory = "market"
	CategoryPayment     NotificationCategory = "payment"
	CategoryAI          NotificationCategory = "ai"
)

// ParseNotificationCategory returns the notification category named by s.
func ParseNotificationCategory(s string) (NotificationCategory, error) {
	switch c := NotificationCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryBudget, CategoryGoal, CategoryTransaction, CategoryMarket, CategoryPayment, CategoryAI:
		return c, nil
	}
	return "", domain.Validationf("invalid notification category %q", s)
}

// Notification is a message shown to the caller.
type Notification struct {
	ID        uint64               `json:"id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Category  NotificationCategory `json:"category"`
	Timestamp time.Time            `json:"timestamp"`
	IsRead    bool                 `json:"is_read"`
}

// AddNotification validates n and stores it unread, stamped with now.
// Caller supplied read state and timestamp are ignored.
func (r *Record) AddNotification(n Notification, now time.Time) (Notification, error) {
	typ, err := ParseNotificationType(string(n.Type))
	if err != nil {
		return Notification{}, err
	}
	cat, err := ParseNotificationCategory(string(n.Category))
	if err != nil {
		return Notification{}, err
	}
	if err := requireText("title", n.Title); err != nil {
		return Notification{}, err
	}
	n.Type = typ
	n.Category = cat
	n.ID = r.NextNotificationID
	r.NextNotificationID++
	n.Timestamp = now
	n.IsRead = false
	r.Notifications = append(r.Notifications, n)
	return n, nil
}

// BudgetAlert records a warning that a budget reached pct percent.
func (r *Record) BudgetAlert(category string, pct decimal.Decimal, now time.Time) (Notification, error) {
	return r.AddNotification(Notification{
		Title:    "Budget Alert",
		Message:  fmt.Sprintf("Budget %s has reached %s%%", category, pct.StringFixed(1)),
		Type:     NotificationWarning,
		Category: CategoryBudget,
	}, now)
}

// GoalCompletedAlert records that the goal titled title was achieved.
func (r *Record) GoalCompletedAlert(title string, now time.Time) (Notification, error) {
	return r.AddNotification(Notification{
		Title:    "Goal Achieved!",
		Message:  fmt.Sprintf("Congratulations! Goal '%s' has been completed!", title),
		Type:     NotificationSuccess,
		Category: CategoryGoal,
	}, now)
}

// MarkNotificationRead marks the notification with id as read.
func (r *Record) MarkNotificationRead(id uint64) error {
	for i := range r.Notifications {
		if r.Notifications[i].ID == id {
			r.Notifications[i].IsRead = true
			return nil
		}
	}
	return domain.NotFoundf("notification %d", id)
}

// MarkAllNotificationsRead marks every notification as read and returns
// how many changed.
func (r *Record) MarkAllNotificationsRead() int {
	n := 0
	for i := range r.Notifications {
		if !r.Notifications[i].IsRead {
			r.Notifications[i].IsRead = true
			n++
		}
	}
	return n
}

// DeleteNotification removes the notification with id.
func (r *Record) DeleteNotification(id uint64) error {
	for i := range r.Notifications {
		if r.Notifications[i].ID == id {
			r.Notifications = append(r.Notifications[:i], r.Notifications[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundf("notification %d", id)
}

// ListNotifications returns the notifications, optionally limited to one
// category, excluding read ones unless showRead is set.
func (r *Record) ListNotifications(cat NotificationCategory, showRead bool) []Notification {
	return r.filterNotifications(func(n Notification) bool {
		return (cat == "" || n.Category == cat) && (showRead || !n.IsRead)
	})
}

// UnreadNotifications returns the notifications not yet read.
func (r *Record) UnreadNotifications() []Notification {
	return r.filterNotifications(func(n Notification) bool { return !n.IsRead })
}

// NotificationsByType returns the notifications of type t.
func (r *Record) NotificationsByType(t NotificationType) []Notification {
	return r.filterNotifications(func(n Notification) bool { return n.Type == t })
}

// UnreadCount returns the number of unread notifications.
func (r *Record) UnreadCount() int {
	return len(r.UnreadNotifications())
}

// NotificationCounts returns the number of notifications per category and per type.
func (r *Record) NotificationCounts() (byCategory map[NotificationCategory]int, byType map[NotificationType]int) {
	byCategory = make(map[NotificationCategory]int)
	byType = make(map[NotificationType]int)
	for _, n := range r.Notifications {
		byCategory[n.Category]++
		byType[n.Type]++
	}
	return byCategory, byType
}

func (r *Record) filterNotifications(keep func(Notification) bool) []Notification {
	out := []Notification{}
	for _, n := range r.Notifications {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
