package mocks

import (
	"context"
	"sync"
	"time"
)

// SentCode records one verification email.
type SentCode struct {
	To   string
	Code string
	TTL  time.Duration
}

// MockMailer implements auth.Mailer and records every message.
type MockMailer struct {
	// Err, when set, makes every send fail.
	Err error
	// SendFn, when set, replaces the default behaviour.
	SendFn func(ctx context.Context, to, code string, ttl time.Duration) error

	mu   sync.Mutex
	sent []SentCode
}

// SendVerificationCode implements auth.Mailer.
func (m *MockMailer) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, to, code, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentCode{To: to, Code: code, TTL: ttl})
	return nil
}

// Sent returns every delivered message in order.
func (m *MockMailer) Sent() []SentCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentCode, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastCode returns the most recent code delivered to the address.
func (m *MockMailer) LastCode(to string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == to {
			return m.sent[i].Code, true
		}
	}
	return "", false
}
