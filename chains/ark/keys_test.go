package ark

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "this is a top secret passphrase"

func TestKeyPair(t *testing.T) {
	keys := NewKeyPair(testPassphrase)

	require.Equal(t, "d8839c2432bfd0a67ef10a804ba991eabba19f154a3d707917681d45822a5712", keys.PrivateKeyHex())
	require.Equal(t, "034151a3ec46b5670a682b0a63394f863587d1bc97483b1b6c70eb58e7f0aed192", keys.PublicKeyHex())
	require.Equal(t, "AGeYmgbg2LgGxRW2vNNJvQ88PknEJsYizC", keys.Address(MainnetVersion))
	require.Equal(t, "D61mfSggzbvQgTUe6JhYKH2doHaqJ3Dyib", keys.Address(DevnetVersion))
}

func TestValidateAddress(t *testing.T) {
	mainnet := NewKeyPair("alpha").Address(MainnetVersion)
	devnet := NewKeyPair("alpha").Address(DevnetVersion)

	require.True(t, strings.HasPrefix(mainnet, "A"))
	require.True(t, strings.HasPrefix(devnet, "D"))

	require.NoError(t, ValidateAddress(mainnet, MainnetVersion))
	require.NoError(t, ValidateAddress(devnet, DevnetVersion))
	require.Error(t, ValidateAddress(mainnet, DevnetVersion))
	require.Error(t, ValidateAddress("not-an-address", MainnetVersion))

	// Flip the last character to break the checksum.
	broken := mainnet[:len(mainnet)-1] + "1"
	if broken == mainnet {
		broken = mainnet[:len(mainnet)-1] + "2"
	}
	require.Error(t, ValidateAddress(broken, MainnetVersion))
}

func TestDecodeAddress(t *testing.T) {
	raw, err := DecodeAddress(NewKeyPair("alpha").Address(MainnetVersion))
	require.NoError(t, err)
	require.Len(t, raw, 21)
	require.Equal(t, MainnetVersion, raw[0])
}

func TestSignAndVerify(t *testing.T) {
	keys := NewKeyPair("alpha")
	hash := chainhash.HashB([]byte("payload"))

	ok, err := VerifySignature(keys.PublicKeyHex(), hash, keys.Sign(hash))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifySignature(NewKeyPair("beta").PublicKeyHex(), hash, keys.Sign(hash))
	require.NoError(t, err)
	require.False(t, ok)
}
