package common

// Storage keys of the persistent key/value contract. The values stored under
// them are JSON documents.
const (
	// UsersKey holds the whole user collection as a JSON array.
	UsersKey = "users"

	// RememberedUserKey holds the remembered session as a single JSON object.
	// It is absent when no session is remembered.
	RememberedUserKey = "rememberedUser"
)
