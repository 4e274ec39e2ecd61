package payload

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Message keys carrying the credentials. They are written after the payload
// so a custom parameter cannot shadow them.
const (
	MessageKeyAPIKey  = "key"
	MessageKeyCompany = "company"
	MessageKeyUserID  = "userId"
)

// Message returns the object posted into the embedded content on load.
func (c Config) Message() map[string]any {
	m := make(map[string]any, len(c.Payload)+3)
	maps.Copy(m, c.Payload)
	m[MessageKeyAPIKey] = c.APIKey
	m[MessageKeyCompany] = c.Company
	m[MessageKeyUserID] = c.UserID
	return m
}

// InjectionScript renders the full-payload postMessage statement.
func (c Config) InjectionScript() (string, error) {
	return PostMessageScript(c.Message())
}

// CurrentExerciseScript renders the followup posted when the camera's
// current exercise changes on an already-loaded surface.
func CurrentExerciseScript(name string) (string, error) {
	return PostMessageScript(map[string]any{KeyCurrentExercise: name})
}

// PostMessageScript serializes msg as a JSON object literal and posts it to
// the page with a wildcard target origin.
func PostMessageScript(msg map[string]any) (string, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("payload: encode message: %w", err)
	}
	return fmt.Sprintf("window.postMessage(%s, '*');", b), nil
}
