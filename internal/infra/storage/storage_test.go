package storage

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemoryForEmptyPath(t *testing.T) {
	client, err := Open(lgr.New(lgr.Debug), "")
	require.NoError(t, err)
	require.NotNil(t, client.DB())
	defer func() { _ = client.Close() }()

	err = client.DB().Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("k"), []byte("v"))
	})
	assert.NoError(t, err)
}

func TestOpen_InvalidPathErrors(t *testing.T) {
	_, err := Open(lgr.New(lgr.Debug), "/root/nonexistent-dir-xyz/\x00bad")
	assert.Error(t, err)
}
