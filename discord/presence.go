package discord

// presence.go represents the structures for user presences and activities.

// PresenceStatus represents a presence's status.
type PresenceStatus string

// Presence statuses.
const (
	PresenceStatusOnline  PresenceStatus = "online"
	PresenceStatusIdle    PresenceStatus = "idle"
	PresenceStatusDND     PresenceStatus = "dnd"
	PresenceStatusOffline PresenceStatus = "offline"
)

// ClientStatus represents a user's status per device class.
type ClientStatus struct {
	Desktop PresenceStatus `json:"desktop,omitempty"`
	Mobile  PresenceStatus `json:"mobile,omitempty"`
	Web     PresenceStatus `json:"web,omitempty"`
}

// Presence represents a point-in-time snapshot of a user's status and
// activities, as received in presence updates and member chunks.
// Activities are in platform-reported order, least recent first.
type Presence struct {
	User         *User          `json:"user,omitempty"`
	Status       PresenceStatus `json:"status"`
	Activities   []Activity     `json:"activities"`
	ClientStatus ClientStatus   `json:"client_status"`
}

// UserID returns the id of the user this presence belongs to.
func (p *Presence) UserID() Snowflake {
	if p.User == nil {
		return ""
	}

	return p.User.ID
}

// ActivityType represents an activity's type.
type ActivityType int

// Activity types.
const (
	ActivityTypeGame ActivityType = iota
	ActivityTypeStreaming
	ActivityTypeListening
	ActivityTypeWatching
	ActivityTypeCustom
	ActivityTypeCompeting
)

// Activity represents one concurrently-running application or status
// entry a user reports.
type Activity struct {
	Name          string       `json:"name"`
	Type          ActivityType `json:"type"`
	URL           string       `json:"url,omitempty"`
	ApplicationID Snowflake    `json:"application_id,omitempty"`
	Details       string       `json:"details,omitempty"`
	State         string       `json:"state,omitempty"`
	Assets        *Assets      `json:"assets,omitempty"`
}

// Assets represents an activity's images and their hover texts.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}
