package domain

// Creative is an ad creative as reported by the remote platform. Creatives
// have no local mirror: the platform is authoritative and every read is a
// live remote call. Nested specs are kept as loose maps because the platform
// evolves them independently of this service; they are JSON-encoded into
// string form parameters on the wire.
type Creative struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Title            string           `json:"title,omitempty"`
	Body             string           `json:"body,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	ImageHash        string           `json:"image_hash,omitempty"`
	VideoID          string           `json:"video_id,omitempty"`
	ThumbnailURL     string           `json:"thumbnail_url,omitempty"`
	ObjectStorySpec  map[string]any   `json:"object_story_spec,omitempty"`
	AssetFeedSpec    map[string]any   `json:"asset_feed_spec,omitempty"`
	AdLabels         []map[string]any `json:"adlabels,omitempty"`
	URLTags          string           `json:"url_tags,omitempty"`
	CallToActionType string           `json:"call_to_action_type,omitempty"`
	LinkURL          string           `json:"link_url,omitempty"`
	ObjectType       string           `json:"object_type,omitempty"`
	Status           string           `json:"status,omitempty"`
}

// CreativePatch carries mutable creative fields for an update. Only set
// pointers are attached to the outgoing payload.
type CreativePatch struct {
	Name             *string          `json:"name,omitempty"`
	Title            *string          `json:"title,omitempty"`
	Body             *string          `json:"body,omitempty"`
	ImageURL         *string          `json:"image_url,omitempty"`
	ImageHash        *string          `json:"image_hash,omitempty"`
	ObjectStorySpec  map[string]any   `json:"object_story_spec,omitempty"`
	AssetFeedSpec    map[string]any   `json:"asset_feed_spec,omitempty"`
	AdLabels         []map[string]any `json:"adlabels,omitempty"`
	URLTags          *string          `json:"url_tags,omitempty"`
	CallToActionType *string          `json:"call_to_action_type,omitempty"`
	Status           *string          `json:"status,omitempty"`
}
