package domain

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// TokenProperties is the property set sent to the Token Issuing Service.
type TokenProperties struct {
	IsOwner       bool   `json:"is_owner"`
	UserName      string `json:"user_name"`
	StartVideoOff bool   `json:"start_video_off"`
	StartAudioOff bool   `json:"start_audio_off"`
	RoomName      string `json:"room_name"`
}

type TokenRequest struct {
	Properties TokenProperties `json:"properties"`
}

// NewAdminTokenRequest builds an owner-scoped request with audio and video on.
func NewAdminTokenRequest(in FormInput) TokenRequest {
	return TokenRequest{
		Properties: TokenProperties{
			IsOwner:       true,
			UserName:      in.Username,
			StartVideoOff: false,
			StartAudioOff: false,
			RoomName:      in.RoomName,
		},
	}
}

// TokenResult is a successful service response. Fields keeps every key the
// service returned, token included.
type TokenResult struct {
	Token  string                     `json:"token"`
	Fields map[string]json.RawMessage `json:"-"`
}

// TokenErrorBody is the service's application error envelope. Both fields
// are kept raw since the service does not promise they are strings.
type TokenErrorBody struct {
	Error json.RawMessage `json:"error"`
	Info  json.RawMessage `json:"info"`
}

// Present reports whether the error field is set to a truthy value.
// Missing, null, false, 0 and "" all count as absent.
func (b TokenErrorBody) Present() bool {
	switch strings.TrimSpace(string(b.Error)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// Code renders the error field for display.
func (b TokenErrorBody) Code() string { return renderRaw(b.Error) }

// Detail renders the info field for display.
func (b TokenErrorBody) Detail() string { return renderRaw(b.Info) }

// renderRaw unquotes JSON strings and leaves any other value as compact JSON.
func renderRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// IssuedToken is what the proxy hands back to callers.
type IssuedToken struct {
	Token    string `json:"token"`
	Link     string `json:"link"`
	RoomName string `json:"room_name"`
	Username string `json:"username"`
}

// RedemptionLink builds "<discoverBase>/<room>?t=<token>".
func RedemptionLink(discoverBase, roomName, token string) string {
	base := strings.TrimRight(discoverBase, "/")
	return base + "/" + url.PathEscape(roomName) + "?t=" + url.QueryEscape(token)
}
