package service

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/pagination"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notifier is what other services use to raise a notification.
type Notifier interface {
	Notify(typ model.NotificationType, title, message, link string)
}

type NotificationService interface {
	Notifier
	Create(req *model.Notification, actor string) (*model.Notification, error)
	List(unreadOnly bool, page, pageSize int) (pagination.Page[model.Notification], error)
	UnreadCount() (int, error)
	MarkRead(id string) error
	MarkAllRead() error
	Delete(id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	bus  broadcaster
	log  *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, pub event.Publisher, log *zap.Logger) NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("notifications")
	return &notificationService{repo: repo, bus: newBroadcaster(pub, log), log: log}
}

// Notify stores and broadcasts a system notification. Failures are logged,
// never returned, so the write that triggered it still succeeds.
func (s *notificationService) Notify(typ model.NotificationType, title, message, link string) {
	n := &model.Notification{Title: title, Message: message, Type: typ, Link: link}
	if _, err := s.Create(n, model.SystemActor); err != nil {
		s.log.Warn("notify", zap.String("title", title), zap.Error(err))
	}
}

func (s *notificationService) Create(req *model.Notification, actor string) (*model.Notification, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	n := *req
	n.BaseModel = model.BaseModel{}
	if n.Type == "" {
		n.Type = model.NotifyInfo
	}
	n.Stamp(actor, now())

	if err := s.repo.Create(&n); err != nil {
		return nil, err
	}
	s.bus.emit(event.Event{Type: event.TypeNotification, Action: "created", Data: n, Message: n.Title, Actor: actor})
	return &n, nil
}

// List returns notifications newest first.
func (s *notificationService) List(unreadOnly bool, page, pageSize int) (pagination.Page[model.Notification], error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return pagination.Page[model.Notification]{}, err
	}
	out := make([]model.Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if unreadOnly && all[i].Read {
			continue
		}
		out = append(out, all[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return pagination.Paginate(out, page, pageSize), nil
}

func (s *notificationService) UnreadCount() (int, error) {
	all, err := s.repo.FindAll()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range all {
		if !item.Read {
			n++
		}
	}
	return n, nil
}

func (s *notificationService) MarkRead(id string) error {
	return notFound(s.repo.MarkRead(id), ErrNotificationNotFound)
}

func (s *notificationService) MarkAllRead() error {
	return s.repo.MarkAllRead()
}

func (s *notificationService) Delete(id string) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return notFound(err, ErrNotificationNotFound)
	}
	return s.repo.Delete(id)
}
