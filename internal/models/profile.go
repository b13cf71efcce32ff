package models

// Profile carries the display identity used to annotate threads and
// conversation summaries.
type Profile struct {
	ID          int    `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	DisplayName string `db:"display_name" json:"display_name"`
	AvatarURL   string `db:"avatar_url" json:"avatar_url,omitempty"`
}

// Name returns the preferred display string.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
