package app

import (
	"context"
	"sync"

	"quiz-event-service/internal/domain"
)

// IDSet abstracts a durable set of user identifiers.
type IDSet interface {
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
}

// SessionStore abstracts the registry of live attempt sessions. Entries whose
// last heartbeat falls outside the liveness window must be pruned lazily on
// every read; implementations own the window.
type SessionStore interface {
	// Touch registers a session for id or refreshes its heartbeat.
	Touch(ctx context.Context, id string) error
	// Heartbeat refreshes the timestamp only if id currently holds a live
	// session, and reports whether it did.
	Heartbeat(ctx context.Context, id string) (bool, error)
	// IsActive reports whether id holds a live session.
	IsActive(ctx context.Context, id string) (bool, error)
	// Remove drops the session for id, if any.
	Remove(ctx context.Context, id string) error
}

// AdmissionController decides whether a user ID may start or resume the quiz.
// An ID is admitted when it is known, not yet consumed, and not currently held
// by a live session. Finalize consumes an ID permanently.
//
// All state lives in the injected stores; the controller serializes
// read-modify-write cycles per ID so near-simultaneous requests for the same
// ID cannot race each other.
type AdmissionController struct {
	validIDs IDSet
	usedIDs  IDSet
	sessions SessionStore
	locks    keyedMutex
}

func NewAdmissionController(validIDs, usedIDs IDSet, sessions SessionStore) *AdmissionController {
	return &AdmissionController{
		validIDs: validIDs,
		usedIDs:  usedIDs,
		sessions: sessions,
	}
}

// CheckAdmission grants or denies an attempt for id. On grant it registers
// (or refreshes) the active session so a second caller is denied until the
// session expires or finalizes.
func (c *AdmissionController) CheckAdmission(ctx context.Context, id string) (domain.AdmissionDecision, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	known, err := c.validIDs.Contains(ctx, id)
	if err != nil {
		return domain.AdmissionDecision{}, err
	}
	if !known {
		return domain.AdmissionDecision{
			Reason:  domain.DenialUnknown,
			Message: "Неверный ID",
		}, nil
	}

	used, err := c.usedIDs.Contains(ctx, id)
	if err != nil {
		return domain.AdmissionDecision{}, err
	}
	if used {
		return domain.AdmissionDecision{
			Reason:  domain.DenialExhausted,
			Message: "Этот ID уже был использован. Тест завершен.",
		}, nil
	}

	active, err := c.sessions.IsActive(ctx, id)
	if err != nil {
		return domain.AdmissionDecision{}, err
	}
	if active {
		return domain.AdmissionDecision{
			Reason:  domain.DenialInUse,
			Message: "Кто-то уже решает тест под этим ID. Подождите или обратитесь к организатору.",
		}, nil
	}

	if err := c.sessions.Touch(ctx, id); err != nil {
		return domain.AdmissionDecision{}, err
	}
	return domain.AdmissionDecision{Granted: true, Message: "OK"}, nil
}

// Heartbeat keeps an active session alive. A false return means the session
// expired (or never existed) and the client must re-admit.
func (c *AdmissionController) Heartbeat(ctx context.Context, id string) (bool, error) {
	unlock := c.locks.lock(id)
	defer unlock()
	return c.sessions.Heartbeat(ctx, id)
}

// Finalize consumes id permanently: it joins the used-ID set and its active
// session, if any, is removed. Every later CheckAdmission denies as exhausted.
func (c *AdmissionController) Finalize(ctx context.Context, id string) error {
	unlock := c.locks.lock(id)
	defer unlock()

	if err := c.usedIDs.Add(ctx, id); err != nil {
		return err
	}
	return c.sessions.Remove(ctx, id)
}

// keyedMutex serializes operations per key. The zero value is ready to use.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*entry)
	}
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
