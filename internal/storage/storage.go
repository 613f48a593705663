// Package storage provides the durable key-value slots backing the entity
// store. Each collection lives in one slot as a JSON array, loaded wholesale
// at startup and rewritten wholesale on every mutation.
package storage

// Backend reads and writes named slots. Load returns (nil, nil) for a slot
// that has never been written.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}
