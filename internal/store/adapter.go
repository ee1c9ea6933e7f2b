// Package store provides the persistence adapter used by the snapshot-backed
// state containers (auth session, cart, app preferences). Each container
// persists a whitelisted subset of its state under a named key and restores
// it at startup, falling back to defaults when the snapshot is absent or
// unreadable.
package store

// Adapter saves and loads named JSON snapshots. Save overwrites any prior
// value for the key. Load fills dest and reports whether a usable snapshot
// existed; callers treat (false, nil) and any error as "start from
// defaults", so restoration never fails hard.
type Adapter interface {
	Save(key string, value any) error
	Load(key string, dest any) (bool, error)
	Delete(key string) error
}

// Snapshot keys, one namespace per state container.
func AuthKey(userID string) string        { return "auth:" + userID }
func CartKey(userID string) string        { return "cart:" + userID }
func PreferencesKey(userID string) string { return "prefs:" + userID }
