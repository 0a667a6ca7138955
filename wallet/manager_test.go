package wallet

import (
	"strings"
	"testing"
	"time"

	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func TestInitializeAndUnlock(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, "devnet", ark.DevnetVersion)
	require.False(t, m.VaultExists())

	passphrase, err := m.Initialize("hunter2")
	require.NoError(t, err)
	require.Len(t, strings.Fields(passphrase), 12)
	require.True(t, bip39.IsMnemonicValid(passphrase))
	require.True(t, m.VaultExists())

	address, err := m.Address()
	require.NoError(t, err)
	require.Equal(t, ark.NewKeyPair(passphrase).Address(ark.DevnetVersion), address)

	m.Lock()
	require.False(t, m.IsUnlocked())

	fresh := NewManager(dir, "devnet", ark.DevnetVersion)
	require.Error(t, fresh.Unlock("wrong"))
	require.NoError(t, fresh.Unlock("hunter2"))

	got, second, err := fresh.Passphrases()
	require.NoError(t, err)
	require.Equal(t, passphrase, got)
	require.Empty(t, second)
}

func TestSessionSharedAcrossManagers(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, "mainnet", ark.MainnetVersion)
	_, err := m.Initialize("hunter2")
	require.NoError(t, err)

	other := NewManager(dir, "mainnet", ark.MainnetVersion)
	require.True(t, other.IsUnlocked())

	otherNetwork := NewManager(dir, "devnet", ark.DevnetVersion)
	require.False(t, otherNetwork.IsUnlocked())
}

func TestSessionExpires(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, "mainnet", ark.MainnetVersion)
	_, err := m.Initialize("hunter2")
	require.NoError(t, err)

	later := NewManager(dir, "mainnet", ark.MainnetVersion)
	later.now = func() time.Time {
		return time.Now().Add((SessionDuration + 1) * time.Minute)
	}
	require.False(t, later.IsUnlocked())

	_, _, err = later.Passphrases()
	require.ErrorIs(t, err, ErrLocked)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, "mainnet", ark.MainnetVersion)

	require.Error(t, m.Import("not a valid passphrase", "", "hunter2"))

	passphrase, err := GeneratePassphrase()
	require.NoError(t, err)
	require.NoError(t, m.Import("  "+strings.ToUpper(passphrase)+" ", "second", "hunter2"))

	got, second, err := m.Passphrases()
	require.NoError(t, err)
	require.Equal(t, passphrase, got)
	require.Equal(t, "second", second)
}
