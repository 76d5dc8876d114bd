package models

// AvatarBlob holds an uploaded custom avatar image, stored per username.
// Data is the image as a base64 data URL; Timestamp is upload time in
// Unix milliseconds.
type AvatarBlob struct {
	Data      string `json:"data"`
	MimeType  string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}
