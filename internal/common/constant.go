package common

// Storage keys used in the local key/value store.
const (
	TokenKey         = "cinemascape_token"
	CredentialsKey   = "cinemascape_users"
	ProfileKeyPrefix = "user_"
)

// DefaultTokenSecret is the shared secret used to sign session tokens when
// none is configured.
const DefaultTokenSecret = "cinemascape-explorer-secret-key"

// DefaultSessionTTL is the lifetime of tokens minted on login and registration.
const DefaultSessionTTL = "7d"

// ProfileKey returns the storage key holding the profile with the given id.
func ProfileKey(id string) string {
	return ProfileKeyPrefix + id
}
