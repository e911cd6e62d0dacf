package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wafulabr/mentor_connect/models"
	"github.com/wafulabr/mentor_connect/utils"
)

// In-memory stand-ins for the gorm repositories. Conflict-checked creates
// serialize on a mutex, matching the atomicity contract of the real store.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListMentors(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mentors []models.User
	for _, user := range r.users {
		if user.Role == models.RoleMentor {
			mentors = append(mentors, *user)
		}
	}
	return mentors, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	resets map[uuid.UUID]*models.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[uuid.UUID]*models.PasswordReset)}
}

func (r *fakeResetRepo) Create(_ context.Context, reset *models.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reset.ID == uuid.Nil {
		reset.ID = uuid.New()
	}
	cp := *reset
	r.resets[reset.ID] = &cp
	return nil
}

func (r *fakeResetRepo) FindActiveByHash(_ context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reset := range r.resets {
		if reset.TokenHash == tokenHash && !reset.Used && reset.ExpiresAt.After(now) {
			cp := *reset
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeResetRepo) Consume(_ context.Context, id uuid.UUID, now time.Time) (*models.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, ok := r.resets[id]
	if !ok || reset.Used || !reset.ExpiresAt.After(now) {
		return nil, ErrInvalidOrExpiredToken
	}
	reset.Used = true
	cp := *reset
	return &cp, nil
}

func (r *fakeResetRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	for id, reset := range r.resets {
		if reset.Used || !reset.ExpiresAt.After(now) {
			delete(r.resets, id)
			purged++
		}
	}
	return purged, nil
}

func (r *fakeResetRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resets)
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*models.AvailabilitySlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*models.AvailabilitySlot)}
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *models.AvailabilitySlot) error {
	start, end, err := utils.ParseClockRange(slot.StartTime, slot.EndTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.slots {
		if other.MentorID != slot.MentorID || other.Day != slot.Day {
			continue
		}
		os, oe, err := utils.ParseClockRange(other.StartTime, other.EndTime)
		if err != nil {
			continue
		}
		if utils.Overlaps(os, oe, start, end) {
			return ErrOverlapConflict
		}
	}
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlotRepo) ListByMentor(_ context.Context, mentorID uuid.UUID) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByMentorDay(_ context.Context, mentorID uuid.UUID, day string) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID && slot.Day == day {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, mentorID, slotID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.MentorID != mentorID {
		return ErrNotFound
	}
	delete(r.slots, slotID)
	return nil
}

type fakeApptRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*models.Appointment
	slots        *fakeSlotRepo
}

func newFakeApptRepo(slots *fakeSlotRepo) *fakeApptRepo {
	return &fakeApptRepo{appointments: make(map[uuid.UUID]*models.Appointment), slots: slots}
}

func (r *fakeApptRepo) CreateBooked(ctx context.Context, appt *models.Appointment) error {
	start, end, err := utils.ParseClockRange(appt.StartTime, appt.EndTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	day := utils.WeekdayName(appt.Date.Weekday())

	r.mu.Lock()
	defer r.mu.Unlock()
	slots, _ := r.slots.ListByMentorDay(ctx, appt.MentorID, day)
	if !SlotsCover(slots, start, end) {
		return ErrSlotUnavailable
	}
	if HasBookingConflict(r.mentorAppointments(appt.MentorID), appt.Date, start, end, uuid.Nil) {
		return ErrOverlapConflict
	}
	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	cp := *appt
	r.appointments[appt.ID] = &cp
	return nil
}

func (r *fakeApptRepo) mentorAppointments(mentorID uuid.UUID) []models.Appointment {
	var out []models.Appointment
	for _, appt := range r.appointments {
		if appt.MentorID == mentorID {
			out = append(out, *appt)
		}
	}
	return out
}

func (r *fakeApptRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeApptRepo) ListForAccount(_ context.Context, accountID uuid.UUID) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.appointments {
		if appt.Participant(accountID) {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok {
		return ErrNotFound
	}
	appt.Status = status
	return nil
}

func (r *fakeApptRepo) Reschedule(ctx context.Context, appt *models.Appointment) error {
	start, end, err := utils.ParseClockRange(appt.StartTime, appt.EndTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	day := utils.WeekdayName(appt.Date.Weekday())

	r.mu.Lock()
	defer r.mu.Unlock()
	slots, _ := r.slots.ListByMentorDay(ctx, appt.MentorID, day)
	if !SlotsCover(slots, start, end) {
		return ErrSlotUnavailable
	}
	if HasBookingConflict(r.mentorAppointments(appt.MentorID), appt.Date, start, end, appt.ID) {
		return ErrOverlapConflict
	}
	stored, ok := r.appointments[appt.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Date = appt.Date
	stored.StartTime = appt.StartTime
	stored.EndTime = appt.EndTime
	return nil
}

func (r *fakeApptRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

type fakeConvRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*models.Conversation
	messages      map[uuid.UUID][]models.Message
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		conversations: make(map[uuid.UUID]*models.Conversation),
		messages:      make(map[uuid.UUID][]models.Message),
	}
}

func (r *fakeConvRepo) FindActiveByPair(_ context.Context, clientID, mentorID uuid.UUID) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conv := range r.conversations {
		if conv.ClientID == clientID && conv.MentorID == mentorID && conv.IsActive {
			cp := *conv
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeConvRepo) Create(_ context.Context, conv *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	cp := *conv
	r.conversations[conv.ID] = &cp
	return nil
}

func (r *fakeConvRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *conv
	return &cp, nil
}

func (r *fakeConvRepo) ListForAccount(_ context.Context, accountID uuid.UUID) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Conversation
	for _, conv := range r.conversations {
		if conv.IsActive && conv.Participant(accountID) {
			out = append(out, *conv)
		}
	}
	return out, nil
}

func (r *fakeConvRepo) AppendMessage(_ context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[msg.ConversationID]
	if !ok {
		return ErrNotFound
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], *msg)
	conv.UpdatedAt = msg.CreatedAt
	return nil
}

func (r *fakeConvRepo) ListMessages(_ context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Message(nil), r.messages[conversationID]...), nil
}

func (r *fakeConvRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[id]
	if !ok {
		return ErrNotFound
	}
	conv.IsActive = false
	return nil
}

type sentMail struct {
	ToName  string
	ToEmail string
	Subject string
	Body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *recordingMailer) Send(toName, toEmail, subject, htmlContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{ToName: toName, ToEmail: toEmail, Subject: subject, Body: htmlContent})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *recordingMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
