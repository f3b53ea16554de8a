package entity

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// User is the profile kept in the client session next to the token.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func (u User) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return "User"
	}
}

// Avatar falls back to a generated initials image.
func (u User) Avatar() string {
	if u.AvatarURL != "" {
		return u.AvatarURL
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(u.Name()) + "&background=random"
}

// AvatarSized is Avatar with an explicit size for the generated image.
func (u User) AvatarSized(size int) string {
	if u.AvatarURL != "" {
		return u.AvatarURL
	}
	return u.Avatar() + "&size=" + strconv.Itoa(size)
}

// FlexibleID decodes identifiers the backend sends either as numbers or strings.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}
