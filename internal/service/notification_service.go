package service

import (
	"github.com/google/uuid"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
)

type NotificationService interface {
	List(userID uuid.UUID, unreadOnly bool) ([]model.Notification, int64, error)
	MarkRead(userID, id uuid.UUID) (*model.Notification, error)
	MarkAllRead(userID uuid.UUID) (int64, error)
	Delete(userID, id uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// List returns the user's notifications newest first, with the unread count.
func (s *notificationService) List(userID uuid.UUID, unreadOnly bool) ([]model.Notification, int64, error) {
	notifications, err := s.repo.FindByUser(userID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *notificationService) MarkRead(userID, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.MarkRead(id, userID)
	if err != nil {
		return nil, lookup(err, ErrNotificationNotFound)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

func (s *notificationService) Delete(userID, id uuid.UUID) error {
	return lookup(s.repo.Delete(id, userID), ErrNotificationNotFound)
}
