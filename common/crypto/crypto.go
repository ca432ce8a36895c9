package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// EncryptConfirmString is prefixed to sealed data so that it can be
	// identified without a passphrase
	EncryptConfirmString = "CBV1-SEALED"
	// SaltLength is the number of random bytes used to derive a key
	SaltLength = 32

	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

var (
	errSaltTooSmall       = errors.New("salt length is too small")
	errEmptyPassphrase    = errors.New("passphrase cannot be empty")
	errNotEncrypted       = errors.New("data is not encrypted")
	errCiphertextTooSmall = errors.New("ciphertext is too small")
)

// GetRandomSalt returns a random salt
func GetRandomSalt(input []byte, saltLen int) ([]byte, error) {
	if saltLen <= 0 {
		return nil, errSaltTooSmall
	}
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	var result []byte
	if input != nil {
		result = input
	}
	result = append(result, salt...)
	return result, nil
}

// IsEncrypted reports whether data carries the encryption confirmation prefix
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(EncryptConfirmString))
}

// Encrypt seals data with AES-256-GCM using a key derived from the passphrase
// with scrypt. The output is the confirmation prefix, salt, nonce and
// ciphertext concatenated.
func Encrypt(data, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errEmptyPassphrase
	}
	salt, err := GetRandomSalt(nil, SaltLength)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(EncryptConfirmString)+len(salt)+len(nonce)+len(data)+gcm.Overhead())
	out = append(out, EncryptConfirmString...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, data, nil), nil
}

// Decrypt opens data previously sealed by Encrypt
func Decrypt(data, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errEmptyPassphrase
	}
	if !IsEncrypted(data) {
		return nil, errNotEncrypted
	}
	data = data[len(EncryptConfirmString):]
	if len(data) < SaltLength {
		return nil, errCiphertextTooSmall
	}
	salt, data := data[:SaltLength], data[SaltLength:]
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize()+gcm.Overhead() {
		return nil, errCiphertextTooSmall
	}
	nonce, data := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, data, nil)
}

func newGCM(passphrase, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
