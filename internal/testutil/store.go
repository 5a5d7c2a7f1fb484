// Package testutil holds in-memory repository fakes. They enforce the same
// unique constraints as the SQL schema.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"quickcare/internal/domain/entity"
	"quickcare/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger returns a logrus logger that discards output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Store is an in-memory database shared by the fake repositories.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]entity.User
	appointments []entity.Appointment
	reviews      []entity.Review
	attempts     map[uuid.UUID]entity.PaymentAttempt
	auditLogs    []entity.AuditLog

	// Fault injection
	CreateAttemptErr   error
	CompleteAttemptErr error
	MarkAttemptErr     error
	AuditErr           error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		attempts: make(map[uuid.UUID]entity.PaymentAttempt),
	}
}

func (s *Store) Users() repository.UserRepository                     { return userRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository       { return appointmentRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository                 { return reviewRepo{s} }
func (s *Store) PaymentAttempts() repository.PaymentAttemptRepository { return attemptRepo{s} }
func (s *Store) AuditLogs() repository.AuditLogRepository             { return auditRepo{s} }

// AppointmentCount returns how many appointments are stored.
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// Attempts returns a snapshot of every payment attempt.
func (s *Store) Attempts() []entity.PaymentAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.PaymentAttempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		out = append(out, a)
	}
	return out
}

// Actions returns the recorded audit actions in insertion order.
func (s *Store) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.auditLogs))
	for _, l := range s.auditLogs {
		out = append(out, l.Action)
	}
	return out
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicateKey, constraint)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return duplicate("idx_users_email")
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return duplicate("idx_users_google_id")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.s.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (r appointmentRepo) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]entity.Appointment(nil), r.s.appointments...)
	sortAppointments(out)
	return out, nil
}

func (r appointmentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.appointments {
		if a.TransactionID == transactionID {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func sortAppointments(list []entity.Appointment) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.HospitalID == review.HospitalID && existing.UserID == review.UserID {
			return duplicate("idx_reviews_hospital_user")
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	// Strictly increasing timestamps keep newest-first ordering deterministic
	now := time.Now().Add(time.Duration(len(r.s.reviews)) * time.Millisecond)
	review.CreatedAt, review.UpdatedAt = now, now
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r reviewRepo) FindByHospitalID(ctx context.Context, hospitalID string) ([]entity.Review, error) {
	return r.filter(func(rv entity.Review) bool { return rv.HospitalID == hospitalID }), nil
}

func (r reviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Review, error) {
	return r.filter(func(rv entity.Review) bool { return rv.UserID == userID }), nil
}

func (r reviewRepo) filter(keep func(entity.Review) bool) []entity.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Review
	for _, rv := range r.s.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type attemptRepo struct{ s *Store }

func (r attemptRepo) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.CreateAttemptErr != nil {
		return r.s.CreateAttemptErr
	}
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.Status == "" {
		attempt.Status = entity.PaymentAttemptPending
	}
	now := time.Now()
	attempt.CreatedAt, attempt.UpdatedAt = now, now
	r.s.attempts[attempt.ID] = *attempt
	return nil
}

func (r attemptRepo) Complete(ctx context.Context, attemptID uuid.UUID, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.CompleteAttemptErr != nil {
		return r.s.CompleteAttemptErr
	}
	attempt, ok := r.s.attempts[attemptID]
	if !ok || attempt.Status != entity.PaymentAttemptPending {
		return fmt.Errorf("payment attempt %s is not pending", attemptID)
	}
	for _, a := range r.s.appointments {
		if a.TransactionID == appointment.TransactionID {
			return duplicate("appointments_transaction_id_key")
		}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now()
	appointment.CreatedAt, appointment.UpdatedAt = now, now
	r.s.appointments = append(r.s.appointments, *appointment)

	id := appointment.ID
	attempt.Status = entity.PaymentAttemptCompleted
	attempt.TransactionID = appointment.TransactionID
	attempt.AppointmentID = &id
	attempt.UpdatedAt = now
	r.s.attempts[attemptID] = attempt
	return nil
}

func (r attemptRepo) MarkFailed(ctx context.Context, attemptID uuid.UUID, reason string) error {
	return r.update(attemptID, func(a *entity.PaymentAttempt) {
		a.Status = entity.PaymentAttemptFailed
		a.LastError = reason
	})
}

func (r attemptRepo) MarkReconciliationRequired(ctx context.Context, attemptID uuid.UUID, transactionID, reason string) error {
	return r.update(attemptID, func(a *entity.PaymentAttempt) {
		a.Status = entity.PaymentAttemptReconciliationRequired
		a.LastError = reason
		if transactionID != "" {
			a.TransactionID = transactionID
		}
	})
}

func (r attemptRepo) update(attemptID uuid.UUID, apply func(*entity.PaymentAttempt)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MarkAttemptErr != nil {
		return r.s.MarkAttemptErr
	}
	attempt, ok := r.s.attempts[attemptID]
	if !ok {
		return fmt.Errorf("payment attempt %s not found", attemptID)
	}
	apply(&attempt)
	attempt.UpdatedAt = time.Now()
	r.s.attempts[attemptID] = attempt
	return nil
}

func (r attemptRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentAttempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attempts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r attemptRepo) FindByStatus(ctx context.Context, statuses ...entity.PaymentAttemptStatus) ([]entity.PaymentAttempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.PaymentAttempt
	for _, a := range r.s.attempts {
		if len(statuses) == 0 || containsStatus(statuses, a.Status) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func containsStatus(list []entity.PaymentAttemptStatus, status entity.PaymentAttemptStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

type auditRepo struct{ s *Store }

func (r auditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.AuditErr != nil {
		return r.s.AuditErr
	}
	log.ID = int64(len(r.s.auditLogs) + 1)
	log.CreatedAt = time.Now()
	r.s.auditLogs = append(r.s.auditLogs, *log)
	return nil
}

func (r auditRepo) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.AuditLog
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.s.auditLogs[i])
	}
	return out, nil
}

func (r auditRepo) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.auditLogs {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, nil
}

// RevocationStore is an in-memory TokenRevocationStore. Err, when set, is
// returned from every call.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Err     error
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time)}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.revoked[tokenID] = expiresAt
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}
