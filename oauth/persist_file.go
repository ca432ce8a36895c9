package oauth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thrasher-corp/coinbasev1/common/crypto"
	"github.com/thrasher-corp/coinbasev1/common/file"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

var errPassphraseRequired = errors.New("token file is encrypted and no passphrase was supplied")

// FilePersister stores tokens as JSON on disk, sealed with the passphrase when
// one is set
type FilePersister struct {
	Path       string
	Passphrase []byte
}

// Load reads tokens from disk
func (f *FilePersister) Load(context.Context) (Tokens, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Tokens{}, fmt.Errorf("%w: %s", ErrNoTokens, f.Path)
		}
		return Tokens{}, err
	}
	if crypto.IsEncrypted(data) {
		if len(f.Passphrase) == 0 {
			return Tokens{}, errPassphraseRequired
		}
		if data, err = crypto.Decrypt(data, f.Passphrase); err != nil {
			return Tokens{}, err
		}
	}
	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}, fmt.Errorf("cannot decode token file %s: %w", f.Path, err)
	}
	return t, nil
}

// Save writes tokens to disk with owner only permissions
func (f *FilePersister) Save(_ context.Context, t Tokens) error {
	data, err := json.MarshalIndent(t, "", " ")
	if err != nil {
		return err
	}
	if len(f.Passphrase) > 0 {
		if data, err = crypto.Encrypt(data, f.Passphrase); err != nil {
			return err
		}
	}
	return file.Write(f.Path, data)
}
