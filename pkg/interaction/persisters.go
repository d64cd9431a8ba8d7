package interaction

import "context"

type postLiker interface {
	LikePost(ctx context.Context, postID, studentID string) error
	UnlikePost(ctx context.Context, postID, studentID string) error
}

type postSaver interface {
	SavePost(ctx context.Context, postID string) error
	UnsavePost(ctx context.Context, postID string) error
}

type follower interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
}

// LikePersister persists post likes for studentID.
func LikePersister(api postLiker, studentID string) Persister {
	return PersisterFunc(func(ctx context.Context, postID string, add bool) error {
		if add {
			return api.LikePost(ctx, postID, studentID)
		}
		return api.UnlikePost(ctx, postID, studentID)
	})
}

// SavePersister persists saved posts for the authenticated caller.
func SavePersister(api postSaver) Persister {
	return PersisterFunc(func(ctx context.Context, postID string, add bool) error {
		if add {
			return api.SavePost(ctx, postID)
		}
		return api.UnsavePost(ctx, postID)
	})
}

// FollowPersister persists follows made by followerID.
func FollowPersister(api follower, followerID string) Persister {
	return PersisterFunc(func(ctx context.Context, followingID string, add bool) error {
		if add {
			return api.Follow(ctx, followerID, followingID)
		}
		return api.Unfollow(ctx, followerID, followingID)
	})
}
