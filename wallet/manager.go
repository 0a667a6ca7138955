package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/chinmay1088/arkgo/crypto"
	jsoniter "github.com/json-iterator/go"
	"github.com/tyler-smith/go-bip39"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Session duration in minutes
	SessionDuration = 30

	// 128 bits of entropy give a 12 word passphrase
	entropyBits = 128

	vaultFile   = "wallet.vault"
	sessionFile = "session.json"
)

// ErrLocked is returned when a secret is requested from a locked wallet.
var ErrLocked = fmt.Errorf("wallet is locked")

// SessionData holds the wallet session information
type SessionData struct {
	Token            string    `json:"token"`
	Passphrase       string    `json:"passphrase"`
	SecondPassphrase string    `json:"secondPassphrase,omitempty"`
	Expiration       time.Time `json:"expiration"`
	Network          string    `json:"network"`
}

// Manager keeps the wallet passphrase in an encrypted vault and in a
// short-lived session file.
type Manager struct {
	vaultPath   string
	sessionPath string
	network     string
	version     byte
	now         func() time.Time

	mu       sync.Mutex
	vault    *crypto.Vault
	secrets  crypto.Secrets
	unlocked bool
}

// NewManager creates a manager storing its files under dir. network is
// remembered with the session and version selects the address format.
func NewManager(dir, network string, version byte) *Manager {
	return &Manager{
		vaultPath:   filepath.Join(dir, vaultFile),
		sessionPath: filepath.Join(dir, sessionFile),
		network:     network,
		version:     version,
		now:         time.Now,
	}
}

func generateSessionToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

func (m *Manager) createSession() error {
	token, err := generateSessionToken()
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	session := SessionData{
		Token:            token,
		Passphrase:       m.secrets.Passphrase,
		SecondPassphrase: m.secrets.SecondPassphrase,
		Expiration:       m.now().Add(SessionDuration * time.Minute),
		Network:          m.network,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.sessionPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// loadSession restores the secrets from a valid session for this network.
func (m *Manager) loadSession() bool {
	data, err := os.ReadFile(m.sessionPath)
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		os.Remove(m.sessionPath)
		return false
	}

	if m.now().After(session.Expiration) {
		os.Remove(m.sessionPath)
		return false
	}

	if session.Network != m.network {
		return false
	}

	m.secrets = crypto.Secrets{
		Passphrase:       session.Passphrase,
		SecondPassphrase: session.SecondPassphrase,
	}
	m.unlocked = true
	return true
}

func (m *Manager) clearSession() {
	os.Remove(m.sessionPath)
}

// GeneratePassphrase returns a fresh 12 word BIP39 passphrase.
func GeneratePassphrase() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	passphrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate passphrase: %w", err)
	}
	return passphrase, nil
}

// Initialize creates a new wallet with a fresh passphrase
func (m *Manager) Initialize(password string) (string, error) {
	passphrase, err := GeneratePassphrase()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store(crypto.Secrets{Passphrase: passphrase}, password); err != nil {
		return "", err
	}
	return passphrase, nil
}

// Import stores an existing BIP39 passphrase and optional second passphrase.
func (m *Manager) Import(passphrase, secondPassphrase, password string) error {
	passphrase = normalize(passphrase)
	if !bip39.IsMnemonicValid(passphrase) {
		return fmt.Errorf("invalid passphrase")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store(crypto.Secrets{Passphrase: passphrase, SecondPassphrase: secondPassphrase}, password)
}

func normalize(passphrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(passphrase)), " ")
}

func (m *Manager) store(secrets crypto.Secrets, password string) error {
	vault, err := crypto.NewVault(secrets, password)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.vaultPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := m.saveVault(vault); err != nil {
		return fmt.Errorf("failed to save vault: %w", err)
	}

	m.vault = vault
	m.secrets = secrets
	m.unlocked = true

	if err := m.createSession(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Unlock unlocks the wallet with the provided password
func (m *Manager) Unlock(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadSession() {
		return nil
	}

	if m.vault == nil {
		vault, err := m.loadVault()
		if err != nil {
			return fmt.Errorf("failed to load vault: %w", err)
		}
		m.vault = vault
	}

	secrets, err := m.vault.Decrypt(password)
	if err != nil {
		return fmt.Errorf("invalid password")
	}

	m.secrets = *secrets
	m.unlocked = true

	if err := m.createSession(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Lock clears the secrets from memory and removes the session.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unlocked = false
	m.secrets = crypto.Secrets{}
	m.clearSession()
}

func (m *Manager) IsUnlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ensureUnlocked() == nil
}

func (m *Manager) ensureUnlocked() error {
	if m.unlocked && m.secrets.Passphrase != "" {
		return nil
	}
	if !m.loadSession() {
		return ErrLocked
	}
	return nil
}

// Passphrases returns the passphrase and second passphrase (empty if none).
func (m *Manager) Passphrases() (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureUnlocked(); err != nil {
		return "", "", err
	}
	return m.secrets.Passphrase, m.secrets.SecondPassphrase, nil
}

// KeyPair returns the key pair derived from the wallet passphrase.
func (m *Manager) KeyPair() (*ark.KeyPair, error) {
	passphrase, _, err := m.Passphrases()
	if err != nil {
		return nil, err
	}
	return ark.NewKeyPair(passphrase), nil
}

// Address returns the wallet address on the manager's network.
func (m *Manager) Address() (string, error) {
	keys, err := m.KeyPair()
	if err != nil {
		return "", err
	}
	return keys.Address(m.version), nil
}

func (m *Manager) saveVault(vault *crypto.Vault) error {
	data, err := vault.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(m.vaultPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}

func (m *Manager) loadVault() (*crypto.Vault, error) {
	data, err := os.ReadFile(m.vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}
	return crypto.UnmarshalVault(data)
}

// VaultExists checks if a vault file exists
func (m *Manager) VaultExists() bool {
	_, err := os.Stat(m.vaultPath)
	return err == nil
}

func (m *Manager) Network() string {
	return m.network
}
