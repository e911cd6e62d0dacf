package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/models"
)

// ConversationService is the append-only message log between one client and
// one mentor.
type ConversationService struct {
	conversations ConversationRepository
	users         UserRepository
	appointments  AppointmentRepository

	now func() time.Time
}

func NewConversationService(conversations ConversationRepository, users UserRepository, appointments AppointmentRepository) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		appointments:  appointments,
		now:           time.Now,
	}
}

// StartOrGet resolves the (client, mentor) pair from the requester's role and
// either an explicit counterpart or a linked appointment, then returns the
// pair's active conversation, creating it on first contact.
func (s *ConversationService) StartOrGet(ctx context.Context, requesterID uuid.UUID, counterpartID, appointmentID *uuid.UUID) (*models.Conversation, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	var appt *models.Appointment
	if appointmentID != nil {
		appt, err = s.appointments.FindByID(ctx, *appointmentID)
		if err != nil {
			return nil, err
		}
		if !appt.Participant(requesterID) {
			return nil, ErrForbidden
		}
	}

	var clientID, mentorID uuid.UUID
	switch {
	case requester.IsClient():
		clientID = requesterID
		if counterpartID != nil {
			mentorID = *counterpartID
		} else if appt != nil {
			mentorID = appt.MentorID
		}
	case requester.IsMentor():
		mentorID = requesterID
		if counterpartID != nil {
			clientID = *counterpartID
		} else if appt != nil {
			clientID = appt.ClientID
		}
	}
	if clientID == uuid.Nil || mentorID == uuid.Nil || clientID == mentorID {
		return nil, ErrInvalidParticipants
	}

	if counterpartID != nil {
		counterpart, err := s.users.FindByID(ctx, *counterpartID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrInvalidParticipants
			}
			return nil, err
		}
		if counterpart.Role == requester.Role {
			return nil, ErrInvalidParticipants
		}
	}

	conv, err := s.conversations.FindActiveByPair(ctx, clientID, mentorID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	conv = &models.Conversation{
		ClientID:      clientID,
		MentorID:      mentorID,
		AppointmentID: appointmentID,
		IsActive:      true,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// AppendMessage stores a message with a server-assigned timestamp.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID, senderID uuid.UUID, text string) (*models.Message, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Participant(senderID) {
		return nil, ErrForbidden
	}
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      s.now(),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ConversationService) ListMessages(ctx context.Context, conversationID, requesterID uuid.UUID) ([]models.Message, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Participant(requesterID) {
		return nil, ErrForbidden
	}
	return s.conversations.ListMessages(ctx, conversationID)
}

// ListConversations returns the account's active conversations, most
// recently updated first.
func (s *ConversationService) ListConversations(ctx context.Context, accountID uuid.UUID) ([]models.Conversation, error) {
	convs, err := s.conversations.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (s *ConversationService) Deactivate(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.Participant(requesterID) {
		return ErrForbidden
	}
	return s.conversations.Deactivate(ctx, conversationID)
}
