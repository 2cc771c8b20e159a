package service

import (
	"context"

	"github.com/iliyamo/solvely-pub/internal/model"
	"github.com/iliyamo/solvely-pub/internal/queue"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

// UserRepository is the read side of the credential store.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// CipherService derives and reverses stored password ciphertexts.
type CipherService interface {
	Encrypt(plaintext, key string) (string, error)
	Decrypt(cipherHex, key string) (string, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(username, email string) (string, error)
	Verify(raw string) (utils.Claims, error)
}

// EventPublisher receives login audit events.
type EventPublisher interface {
	PublishLogin(ctx context.Context, ev queue.LoginEvent) error
}

// NopPublisher discards events; used when auditing is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishLogin(context.Context, queue.LoginEvent) error { return nil }
