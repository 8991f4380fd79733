package session

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"
)

// CredentialStore persists the session across process restarts.
//
// Load returns (nil, nil) when nothing is persisted. A corrupt or unreadable
// store surfaces as an error with code SESSION_STORAGE_READ; the Authority
// treats that as "no session".
type CredentialStore interface {
	Load() (*PersistedSession, error)
	Save(s *PersistedSession) error
	Clear() error
}

const sessionFileName = "session.json"

// fileEnvelope wraps the persisted payload with a content checksum so a
// truncated or hand-edited file is detected instead of half-restored.
type fileEnvelope struct {
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// FileStore keeps the session in a mode-0600 JSON file under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed credential store rooted at dir.
// The directory is created on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.dir, sessionFileName)
}

// Load reads the persisted session, verifying the content checksum.
func (f *FileStore) Load() (*PersistedSession, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, WrapError(ErrStorageRead, "read session file", err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, WrapError(ErrStorageRead, "parse session file", err)
	}

	if env.Checksum != checksum(env.Payload) {
		return nil, NewError(ErrStorageRead, "session file checksum mismatch")
	}

	var s PersistedSession
	if err := json.Unmarshal(env.Payload, &s); err != nil {
		return nil, WrapError(ErrStorageRead, "parse session payload", err)
	}
	return &s, nil
}

// Save writes the persisted session atomically-enough for a single-user CLI:
// marshalled once, written with owner-only permissions.
func (f *FileStore) Save(s *PersistedSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return WrapError(ErrStorageWrite, "marshal session", err)
	}

	env := fileEnvelope{
		Checksum: checksum(payload),
		Payload:  payload,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return WrapError(ErrStorageWrite, "marshal session envelope", err)
	}

	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return WrapError(ErrStorageWrite, "create credentials directory", err)
	}
	if err := os.WriteFile(f.path(), data, 0600); err != nil {
		return WrapError(ErrStorageWrite, "write session file", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an empty store is a no-op.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return WrapError(ErrStorageWrite, "remove session file", err)
	}
	return nil
}

func checksum(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// MemoryStore is an in-memory CredentialStore for tests and ephemeral use.
type MemoryStore struct {
	mu      sync.Mutex
	session *PersistedSession
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored session, or (nil, nil) when empty.
func (m *MemoryStore) Load() (*PersistedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

// Save stores a copy of the session.
func (m *MemoryStore) Save(s *PersistedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.session = &copied
	return nil
}

// Clear drops the stored session.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
