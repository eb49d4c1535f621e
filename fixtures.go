package feed

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type fixtureAccount struct {
	DisplayName    string
	Handle         string
	AvatarRef      string
	Contact        string
	Secret         string
	Bio            string
	BannerRef      string
	FollowingCount int
	FollowerCount  int
}

type fixturePost struct {
	AuthorHandle string
	Content      string
	MediaRef     string
	Age          time.Duration
	ReplyCount   int
	ShareCount   int
	LikeCount    int
}

var fixtureAccounts = []fixtureAccount{
	{
		DisplayName:    "Dave Rogers",
		Handle:         "dev_dave",
		AvatarRef:      "https://i.pravatar.cc/150?u=dev_dave",
		Contact:        "dave@example.com",
		Secret:         "password123",
		Bio:            "Frontend Developer | React & TypeScript enthusiast. Turning coffee into clean code. 🚀",
		BannerRef:      "https://picsum.photos/seed/dave_banner/1500/500",
		FollowingCount: 150,
		FollowerCount:  2500,
	},
	{
		DisplayName:    "React Dev",
		Handle:         "reactdev",
		AvatarRef:      "https://i.pravatar.cc/150?u=reactdev",
		Contact:        "react@example.com",
		Secret:         "password1",
		Bio:            "Official news and updates from the React team. Building user interfaces for the web.",
		BannerRef:      "https://picsum.photos/seed/react_banner/1500/500",
		FollowingCount: 1,
		FollowerCount:  500000,
	},
	{
		DisplayName:    "Explore Nepal",
		Handle:         "explorenepal",
		AvatarRef:      "https://i.pravatar.cc/150?u=explorenepal",
		Contact:        "nepal@example.com",
		Secret:         "password1",
		Bio:            "Discover the beauty of Nepal. From the highest peaks to the ancient temples. 🇳🇵 #VisitNepal",
		BannerRef:      "https://picsum.photos/seed/nepal_banner/1500/500",
		FollowingCount: 50,
		FollowerCount:  12000,
	},
	{
		DisplayName:    "CSS Wizard",
		Handle:         "css_master",
		AvatarRef:      "https://i.pravatar.cc/150?u=css_master",
		Contact:        "css@example.com",
		Secret:         "password1",
		Bio:            "Making the web a more beautiful place, one style at a time. CSS, animations, and UI design.",
		BannerRef:      "https://picsum.photos/seed/css_banner/1500/500",
		FollowingCount: 300,
		FollowerCount:  42000,
	},
}

var fixturePosts = []fixturePost{
	{
		AuthorHandle: "explorenepal",
		Content:      "Just trekked to Everest Base Camp. The views are out of this world! Truly a once-in-a-lifetime experience. #Nepal #Himalayas #Everest",
		MediaRef:     "https://picsum.photos/seed/everest/600/400",
		Age:          5 * time.Minute,
		ReplyCount:   45,
		ShareCount:   120,
		LikeCount:    1500,
	},
	{
		AuthorHandle: "dev_dave",
		Content:      "Refactoring legacy code is like being a detective. You uncover so many mysteries and hidden gems. #coding #developerlife",
		Age:          30 * time.Minute,
		ReplyCount:   22,
		ShareCount:   40,
		LikeCount:    250,
	},
	{
		AuthorHandle: "explorenepal",
		Content:      "Can never have too many momos. What's your favorite dipping sauce? Mine is the classic tomato achar. #momo #nepalifood #foodie",
		MediaRef:     "https://picsum.photos/seed/momo/600/400",
		Age:          90 * time.Minute,
		ReplyCount:   60,
		ShareCount:   95,
		LikeCount:    980,
	},
	{
		AuthorHandle: "explorenepal",
		Content:      "Update: Traffic congestion reported near Thapathali, Kathmandu due to ongoing road work. Commuters are advised to take alternative routes. #KathmanduTraffic #NepalNews",
		Age:          150 * time.Minute,
		ReplyCount:   10,
		ShareCount:   55,
		LikeCount:    150,
	},
	{
		AuthorHandle: "reactdev",
		Content:      "Excited about the new features in React 19. The automatic batching is going to be a game-changer for performance.",
		Age:          4 * time.Hour,
		ReplyCount:   15,
		ShareCount:   60,
		LikeCount:    420,
	},
	{
		AuthorHandle: "explorenepal",
		Content:      "Phewa Lake in Pokhara at dawn is a slice of heaven. The reflection of Machapuchare on the water is just magical. #Pokhara #Nepal #Nature",
		MediaRef:     "https://picsum.photos/seed/pokhara/600/400",
		Age:          6 * time.Hour,
		ReplyCount:   33,
		ShareCount:   150,
		LikeCount:    2200,
	},
	{
		AuthorHandle: "css_master",
		Content:      "Container queries are finally here and they are as amazing as I'd hoped. Responsive design just got a whole lot easier.",
		Age:          8 * time.Hour,
		ReplyCount:   18,
		ShareCount:   70,
		LikeCount:    550,
	},
	{
		AuthorHandle: "explorenepal",
		Content:      "Exploring the ancient city of Bhaktapur. Every corner tells a story. The woodwork on the temples is incredible! #heritage #nepal #travel",
		MediaRef:     "https://picsum.photos/seed/bhaktapur/600/400",
		Age:          10 * time.Hour,
		ReplyCount:   25,
		ShareCount:   80,
		LikeCount:    1100,
	},
}

// Seed loads the demo dataset so a fresh session starts populated: four
// accounts and a feed of posts carrying pre-existing engagement counters.
// Seeded counters have no backing membership rows; toggles move them
// relative to this baseline.
func Seed(ctx context.Context, repo RepositoryManager) error {
	now := time.Now()

	// One hash per distinct secret; bcrypt is deliberately slow.
	hashes := map[string]string{}
	for _, fa := range fixtureAccounts {
		if _, ok := hashes[fa.Secret]; ok {
			continue
		}
		hash, err := HashSecret(fa.Secret)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash fixture secret")
		}
		hashes[fa.Secret] = hash
	}

	return repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		byHandle := map[string]*Account{}

		for _, fa := range fixtureAccounts {
			account := &Account{
				DisplayName:    fa.DisplayName,
				Handle:         fa.Handle,
				AvatarRef:      fa.AvatarRef,
				Contact:        fa.Contact,
				SecretHash:     hashes[fa.Secret],
				Bio:            fa.Bio,
				BannerRef:      fa.BannerRef,
				FollowingCount: fa.FollowingCount,
				FollowerCount:  fa.FollowerCount,
			}

			account, err := repo.Accounts().RegisterTx(ctx, tx, account)
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed account")
			}
			byHandle[account.Handle] = account
		}

		// Oldest first so rowid order matches chronological order.
		for i := len(fixturePosts) - 1; i >= 0; i-- {
			fp := fixturePosts[i]
			author, ok := byHandle[fp.AuthorHandle]
			if !ok {
				return goerrors.New("fixture post references unknown handle", goerrors.CategoryInternal)
			}

			createdAt := now.Add(-fp.Age)
			post := &Post{
				AccountID: author.ID,
				Content:   fp.Content,
				MediaRef:  fp.MediaRef,
				CreatedAt: &createdAt,
				EngagementCounts: EngagementCounts{
					ReplyCount: fp.ReplyCount,
					ShareCount: fp.ShareCount,
					LikeCount:  fp.LikeCount,
				},
			}

			if _, err := repo.Posts().CreateTx(ctx, tx, post); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed post")
			}
		}

		return nil
	})
}
