package credential

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/okapi-money/okapi/internal/kvstore"
)

const (
	accountsKey = "credential:accounts"
	sessionKey  = "credential:session"

	saltBytes = 16
)

// Store owns the account collection and the single active session. Both
// live in the key-value store under independent keys; no other component
// touches those keys.
type Store struct {
	mu sync.Mutex
	kv kvstore.Store
}

// NewStore builds a credential store over the given key-value backend.
func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// CreateAccount registers a new user and establishes a session for it.
// The email is normalized (lower-case, trimmed) before the uniqueness
// check; ErrDuplicateEmail is returned when it is already taken.
func (s *Store) CreateAccount(ctx context.Context, fullName, email, password string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := normalizeEmail(email)
	accounts := s.loadAccounts(ctx)
	for _, existing := range accounts {
		if existing.Email == normalized {
			return Account{}, ErrDuplicateEmail
		}
	}

	salt, err := newSalt()
	if err != nil {
		return Account{}, fmt.Errorf("generate salt: %w", err)
	}

	account := Account{
		ID:           uuid.New().String(),
		Name:         fullName,
		Email:        normalized,
		PasswordHash: hashPassword(password, salt),
		Salt:         salt,
	}

	accounts = append(accounts, account)
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return Account{}, err
	}
	if err := s.kv.Set(ctx, sessionKey, []byte(account.ID)); err != nil {
		return Account{}, fmt.Errorf("store session: %w", err)
	}
	return account, nil
}

// Authenticate verifies the email/password pair against the stored hash
// and, on success, points the session at the matched account. Unknown
// email and wrong password both return ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := normalizeEmail(email)
	for _, account := range s.loadAccounts(ctx) {
		if account.Email != normalized {
			continue
		}
		if hashPassword(password, account.Salt) != account.PasswordHash {
			return Account{}, ErrInvalidCredentials
		}
		if err := s.kv.Set(ctx, sessionKey, []byte(account.ID)); err != nil {
			return Account{}, fmt.Errorf("store session: %w", err)
		}
		return account, nil
	}
	return Account{}, ErrInvalidCredentials
}

// CurrentSession resolves the session pointer against the account
// collection. A missing or stale pointer reads as no session.
func (s *Store) CurrentSession(ctx context.Context) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		return Account{}, false
	}
	for _, account := range s.loadAccounts(ctx) {
		if account.ID == string(id) {
			return account, true
		}
	}
	return Account{}, false
}

// Logout clears the session pointer. Safe to call with no active session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, sessionKey)
}

// loadAccounts reads the full collection. An absent, unreadable or corrupt
// value degrades to an empty collection; structurally incomplete records
// are dropped whole.
func (s *Store) loadAccounts(ctx context.Context) []Account {
	raw, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		return nil
	}
	var decoded []Account
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	accounts := decoded[:0]
	for _, account := range decoded {
		if account.valid() {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

func (s *Store) saveAccounts(ctx context.Context, accounts []Account) error {
	payload, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.kv.Set(ctx, accountsKey, payload); err != nil {
		return fmt.Errorf("store accounts: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashPassword digests the plaintext concatenated with the account's own
// hex salt. Accounts are never verified against another record's salt.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
