package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealfeed/backend/internal/common"
	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/xcontext"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultAsyncTimeout = 30 * time.Second

// Engine owns every write into feed partitions: fan-out on publish, backfill
// on follow, and cleanup on delete or unfollow. All partition writes are
// best-effort per chunk; a failed chunk is logged and counted, never retried,
// and never fails the chunks around it.
type Engine struct {
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	contentRepo  repository.ContentRepository
	activityRepo repository.ActivityRepository
	feedRepo     repository.FeedRepository
}

func NewEngine(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	contentRepo repository.ContentRepository,
	activityRepo repository.ActivityRepository,
	feedRepo repository.FeedRepository,
) *Engine {
	return &Engine{
		userRepo:     userRepo,
		followRepo:   followRepo,
		contentRepo:  contentRepo,
		activityRepo: activityRepo,
		feedRepo:     feedRepo,
	}
}

// BackfillKey is the deterministic feed-entry key used by backfill, so that
// re-running a backfill overwrites instead of duplicating.
func BackfillKey(typ entity.ActivityType, entityID string) string {
	return fmt.Sprintf("%s:%s", typ, entityID)
}

// Async runs fn on a detached context bounded by the configured timeout. The
// caller's request is never blocked on, or failed by, fn.
func (e *Engine) Async(ctx context.Context, reason string, fn func(ctx context.Context) error) {
	timeout := xcontext.Configs(ctx).Feed.AsyncTimeout
	if timeout <= 0 {
		timeout = defaultAsyncTimeout
	}

	detached := xcontext.Detach(ctx)
	go func() {
		asyncCtx, cancel := context.WithTimeout(detached, timeout)
		defer cancel()

		if err := fn(asyncCtx); err != nil {
			xcontext.Logger(asyncCtx).Errorf("Cannot %s: %v", reason, err)
		}
	}()
}

// FanOut persists the canonical activity, then copies it into the partition
// of every follower of its author. The canonical write is authoritative; a
// follower with no copy is an accepted eventual-consistency gap.
func (e *Engine) FanOut(ctx context.Context, activity *entity.Activity) error {
	if err := e.activityRepo.Create(ctx, activity); err != nil {
		return err
	}

	followerIDs, err := e.followRepo.GetFollowerIDs(ctx, activity.AuthorID)
	if err != nil {
		return err
	}

	if len(followerIDs) == 0 {
		return nil
	}

	batchSize := e.batchSize(ctx)
	eg, egCtx := errgroup.WithContext(ctx)
	for len(followerIDs) > 0 {
		chunk := common.Batch(&followerIDs, batchSize)
		eg.Go(func() error {
			entries := make([]entity.FeedEntry, 0, len(chunk))
			for _, userID := range chunk {
				entries = append(entries, newFeedEntry(userID, activity.ID, activity))
			}

			if err := e.feedRepo.UpsertBatch(egCtx, entries); err != nil {
				// Best effort. The gap is observable only as a delay
				// for the affected followers.
				xcontext.Logger(egCtx).Errorf(
					"Cannot fan out activity %s to %d followers: %v",
					activity.ID, len(chunk), err)
				common.PromCounters[common.FeedChunkFailureTotal].
					WithLabelValues("fanout").Inc()
				return nil
			}

			common.PromCounters[common.FeedEntriesWrittenTotal].
				WithLabelValues("fanout").Add(float64(len(entries)))
			return nil
		})
	}

	return eg.Wait()
}

// Backfill copies every published entity of followeeID into followerID's
// partition, keyed deterministically so repeated runs do not duplicate.
// Entities without a creation time are skipped: defaulting them to now would
// corrupt the chronological order of the feed.
func (e *Engine) Backfill(ctx context.Context, followerID, followeeID string) error {
	followee, err := e.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return err
	}

	contents, err := e.contentRepo.ListPublishedByAuthor(ctx, followeeID)
	if err != nil {
		return err
	}

	previewLen := xcontext.Configs(ctx).Feed.PreviewLength
	entries := make([]entity.FeedEntry, 0, len(contents))
	for i := range contents {
		content := &contents[i]
		if content.CreatedAt.IsZero() {
			xcontext.Logger(ctx).Warnf(
				"Skip backfill of %s %s: no creation time", content.Type, content.ID)
			continue
		}

		entries = append(entries, entity.FeedEntry{
			UserID:         followerID,
			EntryID:        BackfillKey(content.Type, content.ID),
			AuthorID:       followeeID,
			AuthorUsername: followee.Username,
			Type:           content.Type,
			EntityID:       content.ID,
			EntityTitle:    content.Title,
			EntitySlug:     common.Slugify(content.Title, content.ID),
			Preview:        common.Preview(content.Body, previewLen),
			CreatedAt:      content.CreatedAt,
		})
	}

	batchSize := e.batchSize(ctx)
	for len(entries) > 0 {
		chunk := common.Batch(&entries, batchSize)
		if err := e.feedRepo.UpsertBatch(ctx, chunk); err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot backfill %d entries of %s into %s's feed: %v",
				len(chunk), followeeID, followerID, err)
			common.PromCounters[common.FeedChunkFailureTotal].
				WithLabelValues("backfill").Inc()
			continue
		}

		common.PromCounters[common.FeedEntriesWrittenTotal].
			WithLabelValues("backfill").Add(float64(len(chunk)))
	}

	return nil
}

// RemoveFromAllFollowers deletes every copy of the activity identified by
// (authorID, typ, entityID) from the author's followers, then the canonical
// record itself. Without a canonical record this is a no-op.
func (e *Engine) RemoveFromAllFollowers(
	ctx context.Context, authorID string, typ entity.ActivityType, entityID string,
) error {
	activity, err := e.activityRepo.GetByEntity(ctx, authorID, typ, entityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	followerIDs, err := e.followRepo.GetFollowerIDs(ctx, authorID)
	if err != nil {
		return err
	}

	// Copies exist under the canonical id (fan-out) or the deterministic
	// key (backfill); both are purged.
	entryIDs := []string{activity.ID, BackfillKey(typ, entityID)}

	batchSize := e.batchSize(ctx)
	for len(followerIDs) > 0 {
		chunk := common.Batch(&followerIDs, batchSize)
		deleted, err := e.feedRepo.DeleteBatch(ctx, chunk, entryIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf(
				"Cannot delete activity %s from %d followers: %v",
				activity.ID, len(chunk), err)
			common.PromCounters[common.FeedChunkFailureTotal].
				WithLabelValues("cleanup").Inc()
			continue
		}

		common.PromCounters[common.FeedEntriesDeletedTotal].
			WithLabelValues("delete").Add(float64(deleted))
	}

	return e.activityRepo.DeleteByID(ctx, activity.ID)
}

// RemoveAuthorFromFeed purges every entry of one author from one follower's
// partition after an unfollow.
func (e *Engine) RemoveAuthorFromFeed(ctx context.Context, followerID, authorID string) error {
	deleted, err := e.feedRepo.DeleteByUserAndAuthor(ctx, followerID, authorID)
	if err != nil {
		return err
	}

	common.PromCounters[common.FeedEntriesDeletedTotal].
		WithLabelValues("unfollow").Add(float64(deleted))
	return nil
}

func (e *Engine) batchSize(ctx context.Context) int {
	if n := xcontext.Configs(ctx).Feed.FanoutBatchSize; n > 0 {
		return n
	}

	return 500
}

func newFeedEntry(userID, entryID string, activity *entity.Activity) entity.FeedEntry {
	return entity.FeedEntry{
		UserID:         userID,
		EntryID:        entryID,
		AuthorID:       activity.AuthorID,
		AuthorUsername: activity.AuthorUsername,
		Type:           activity.Type,
		EntityID:       activity.EntityID,
		EntityTitle:    activity.EntityTitle,
		EntitySlug:     activity.EntitySlug,
		Preview:        activity.Preview,
		CreatedAt:      activity.CreatedAt,
	}
}
