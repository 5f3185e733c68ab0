package models

import "fmt"

// Reference identifies a reviewed change uniquely within a code host.
type Reference struct {
	Namespace  string `json:"namespace"`  // owner or group
	Collection string `json:"collection"` // repository or project
	Number     int    `json:"number"`
}

// String renders the shorthand form, e.g. "acme/widgets#42".
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Namespace, r.Collection, r.Number)
}

// IsZero reports whether the reference has not been populated.
func (r Reference) IsZero() bool {
	return r.Namespace == "" && r.Collection == "" && r.Number == 0
}

// Identity is a chat-platform user as seen by this tool.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}
