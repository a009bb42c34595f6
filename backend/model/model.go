package model

import "encoding/json"

// TokenResponse is the parsed response of the SSO token endpoint, fields other
// than the access token are carried through without being interpreted
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// VerifyResponse is the character description returned by the SSO verify endpoint
type VerifyResponse struct {
	CharacterID        int64  `json:"CharacterID"`
	CharacterName      string `json:"CharacterName"`
	CharacterOwnerHash string `json:"CharacterOwnerHash"`
	ExpiresOn          string `json:"ExpiresOn"`
	Scopes             string `json:"Scopes"`
	TokenType          string `json:"TokenType"`
}

// ServerStatus is the ESI server status payload
type ServerStatus struct {
	Players       int    `json:"players"`
	ServerVersion string `json:"server_version"`
	StartTime     string `json:"start_time"`
	Vip           bool   `json:"vip,omitempty"`
}

type UserResponse struct {
	Token     string         `json:"token"`
	Character VerifyResponse `json:"character"`
}

type CheckResponse struct {
	Exists bool `json:"exists"`
}

type ScanRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

type ScanResponse struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func SendError(errorMessage string) *ErrorResponse {
	return &ErrorResponse{
		Error: errorMessage,
	}
}
