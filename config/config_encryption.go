package config

import (
	"github.com/thrasher-corp/coinbasev1/common/crypto"
)

// IsEncrypted returns whether data is a sealed config
func IsEncrypted(data []byte) bool {
	return crypto.IsEncrypted(data)
}

// EncryptConfigData seals a JSON config with a key derived from passphrase
func EncryptConfigData(configData, passphrase []byte) ([]byte, error) {
	return crypto.Encrypt(configData, passphrase)
}

// DecryptConfigData opens a sealed config
func DecryptConfigData(configData, passphrase []byte) ([]byte, error) {
	return crypto.Decrypt(configData, passphrase)
}
