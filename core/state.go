package core

// KVStore is the local persistent key-value state, the client's analog of
// browser local storage. Keys are namespaced per account uid; the empty
// namespace holds app-global entries. Writes are idempotent and single-writer
// per session.
type KVStore interface {
	Get(namespace, key string) (string, bool, error)
	Set(namespace, key, value string) error
	Delete(namespace, key string) error
}
