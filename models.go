package feed

import (
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is a registered identity capable of authoring posts and replies.
type Account struct {
	bun.BaseModel  `bun:"table:accounts,alias:acc"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	DisplayName    string     `bun:"display_name,notnull" json:"display_name,omitempty"`
	Handle         string     `bun:"handle,notnull,unique" json:"handle,omitempty"`
	AvatarRef      string     `bun:"avatar_ref" json:"avatar_ref,omitempty"`
	Contact        string     `bun:"contact,notnull,unique" json:"contact,omitempty"`
	SecretHash     string     `bun:"secret_hash" json:"secret_hash,omitempty"`
	Bio            string     `bun:"bio" json:"bio,omitempty"`
	BannerRef      string     `bun:"banner_ref" json:"banner_ref,omitempty"`
	FollowingCount int        `bun:"following_count" json:"following_count"`
	FollowerCount  int        `bun:"follower_count" json:"follower_count"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EngagementCounts are the aggregate counters rendered under a post.
type EngagementCounts struct {
	ReplyCount int `bun:"reply_count" json:"reply_count"`
	ShareCount int `bun:"share_count" json:"share_count"`
	LikeCount  int `bun:"like_count" json:"like_count"`
}

// Post is a single authored item. AccountID is a lookup reference into the
// accounts table, not ownership; accounts are never deleted in this design.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID     uuid.UUID `bun:"account_id,notnull,type:uuid" json:"account_id,omitempty"`
	Author        *Account  `bun:"rel:belongs-to,join:account_id=id" json:"author,omitempty"`
	Content       string    `bun:"content,notnull" json:"content,omitempty"`
	MediaRef      string    `bun:"media_ref" json:"media_ref,omitempty"`
	EngagementCounts
	Replies   []*Reply   `bun:"rel:has-many,join:id=post_id" json:"replies,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Reply is a comment attached to exactly one post. Replies are appended,
// never reordered or removed.
type Reply struct {
	bun.BaseModel `bun:"table:replies,alias:rpl"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PostID        uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"post_id,omitempty"`
	AccountID     uuid.UUID  `bun:"account_id,notnull,type:uuid" json:"account_id,omitempty"`
	Author        *Account   `bun:"rel:belongs-to,join:account_id=id" json:"author,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// PostLike is one row of a viewer's liked-set. Membership is keyed by
// (account_id, post_id) so switching viewers switches like-sets.
type PostLike struct {
	bun.BaseModel `bun:"table:post_likes,alias:plk"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID     uuid.UUID  `bun:"account_id,notnull,type:uuid" json:"account_id,omitempty"`
	PostID        uuid.UUID  `bun:"post_id,notnull,type:uuid" json:"post_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

const defaultBannerRef = "https://picsum.photos/seed/new_user_banner/1500/500"

// AvatarRefForHandle derives a stable avatar reference from a handle so
// re-registering the same handle in a fresh session yields the same avatar.
func AvatarRefForHandle(handle string) string {
	if id, err := hashid.NewUUID(handle); err == nil {
		return "https://i.pravatar.cc/150?u=" + id.String()
	}
	return "https://i.pravatar.cc/150?u=" + handle
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.AvatarRef == "" {
		record.AvatarRef = AvatarRefForHandle(record.Handle)
	}

	if record.BannerRef == "" {
		record.BannerRef = defaultBannerRef
	}
}

func preparePostDefaults(record *Post) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func prepareReplyDefaults(record *Reply) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
