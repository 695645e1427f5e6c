package secrets

import (
	"sort"
	"sync"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
)

// DefaultScope is the scope tag a secret receives when none is specified
// (spec 3).
const DefaultScope = "GLOBAL"

type record struct {
	secret Secret
	scope  string
	envKeys []string
}

// Manager binds secrets to an environment scope (spec 4.I). All mutations —
// bind and unbind — run under a single lock so the derived environment
// publication is atomic from the outside (spec 5): an observer never sees a
// partially-bound or partially-unbound secret's environment entries.
type Manager struct {
	mu      sync.Mutex
	records map[string]record
	env     ports.EnvironmentManager
}

// NewManager constructs a Manager that publishes derived entries into env.
func NewManager(env ports.EnvironmentManager) *Manager {
	return &Manager{records: make(map[string]record), env: env}
}

// Bind stores the secret under id and publishes its derived environment
// entries (spec 4.I).
func (m *Manager) Bind(id string, s Secret) {
	m.BindScoped(id, s, DefaultScope)
}

// BindScoped is Bind with an explicit scope tag.
func (m *Manager) BindScoped(id string, s Secret, scope string) {
	if scope == "" {
		scope = DefaultScope
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	derived := deriveEnv(id, s)
	for k, v := range derived {
		m.env.Set(k, v)
	}

	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m.records[id] = record{secret: s, scope: scope, envKeys: keys}
}

// Unbind removes every derived env entry for id, then deletes the stored
// secret. Unbind is idempotent after the first call (spec 8).
func (m *Manager) Unbind(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return
	}
	for _, k := range rec.envKeys {
		m.env.Remove(k)
	}
	delete(m.records, id)
}

// Get retrieves the secret bound to id, failing with a "mismatched secret"
// error (carrying both actual and requested kinds) if the stored variant
// differs, and a "missing secret" error if nothing is bound (spec 4.I, 7).
func (m *Manager) Get(id string, expected Kind) (Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return Secret{}, pipeline.NewMissingSecretError(id)
	}
	if rec.secret.Kind != expected {
		return Secret{}, pipeline.NewSecretTypeMismatchError(id, string(expected), string(rec.secret.Kind))
	}
	return rec.secret, nil
}

// List returns the ids of every currently bound secret, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func deriveEnv(id string, s Secret) map[string]string {
	switch s.Kind {
	case KindPlainText:
		return map[string]string{id: s.Text}
	case KindUsernamePassword:
		return map[string]string{
			id + "_USERNAME": s.Username,
			id + "_PASSWORD": s.Password,
		}
	case KindSshUserPrivateKey:
		out := map[string]string{id + "_SSH_KEY": s.PrivateKey}
		if s.Passphrase != "" {
			out[id+"_SSH_PASSPHRASE"] = s.Passphrase
		}
		return out
	case KindAwsCredentials:
		return map[string]string{
			id + "_AWS_ACCESS_KEY_ID":     s.AccessKeyID,
			id + "_AWS_SECRET_ACCESS_KEY": s.SecretAccessKey,
		}
	case KindFileCredential:
		return map[string]string{id + "_FILE": s.Filename}
	case KindCertificateCredential:
		return map[string]string{id + "_CERT_PASSWORD": s.KeystorePassword}
	case KindStringCredential:
		return map[string]string{id: s.StringSecret}
	default:
		return nil
	}
}
