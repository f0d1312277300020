package entities

// Guild is the per-guild configuration. It is created lazily on the first
// write and is never deleted.
type Guild struct {
	// ID is the ID of the guild.
	ID string `json:"id" bson:"id"`

	// LogChannelID is the ID of the channel that ticket logs are posted to.
	LogChannelID string `json:"log_channel_id,omitempty" bson:"log_channel_id,omitempty"`

	// SupportRoleID is the ID of the role that handles tickets.
	SupportRoleID string `json:"support_role_id,omitempty" bson:"support_role_id,omitempty"`
}
