// Package secure keeps key material encrypted while it sits in memory.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer holds a secret inside a memguard enclave. The plaintext only
// exists in locked memory for the duration of a Bytes call.
type Buffer struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
}

// New copies data into a new enclave. The caller's slice is left intact.
func New(data []byte) *Buffer {
	b := &Buffer{}
	if len(data) == 0 {
		return b
	}
	// NewEnclave wipes its argument
	tmp := make([]byte, len(data))
	copy(tmp, data)
	b.enclave = memguard.NewEnclave(tmp)
	return b
}

// Bytes returns a copy of the protected data.
// A destroyed or empty buffer yields an empty slice.
func (b *Buffer) Bytes() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.enclave == nil {
		return []byte{}, nil
	}

	locked, err := b.enclave.Open()
	if err != nil {
		return nil, err
	}
	defer locked.Destroy()

	out := make([]byte, locked.Size())
	copy(out, locked.Bytes())
	return out, nil
}

// Destroy drops the enclave. Safe to call more than once.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enclave = nil
}

// Purge wipes all memguard-managed memory. Call once at process exit.
func Purge() {
	memguard.Purge()
}
