package session

// KV is the durable key-value persistence the session store writes through.
// Keeping it narrow makes the storage medium swappable (bbolt file, OS
// keychain, in-memory for tests).
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// MemoryKV is an in-process KV for tests and memory-only mode.
type MemoryKV struct {
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.data[key] = buf
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
