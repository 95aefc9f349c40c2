package models

// UserPublic is the snapshot of the identity provider's public display
// fields. It is upserted on every authenticated write so review listings
// can join reviewer names locally.
type UserPublic struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	FullName string `bson:"full_name" json:"fullName"`
	Avatar   string `bson:"avatar" json:"avatar"`
}
