package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sanremolab/sanremo-pulse-go/internal/constants"
	"github.com/sanremolab/sanremo-pulse-go/internal/domain"
)

// Bodies Reddit substitutes when a comment is no longer available.
const (
	bodyDeleted = "[deleted]"
	bodyRemoved = "[removed]"
)

// walkResult is the immutable outcome of one tree walk: comments in
// encounter order plus the continuation ids of any "more" placeholders.
type walkResult struct {
	comments []domain.Comment
	more     []string
}

// FetchThread retrieves the megathread's full comment tree, resolving every
// "more" placeholder in fixed-size batches. Individual failed calls degrade
// to an empty contribution; the caller sees a partial corpus, never an error
// for transient trouble.
func (c *Client) FetchThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	cacheKey := "reddit:thread:" + threadID
	var cached domain.Thread
	if c.cache.Get(ctx, cacheKey, &cached) {
		c.logger.Debug("Thread cache hit", zap.String("thread", threadID))
		return &cached, nil
	}

	thread := &domain.Thread{ID: threadID}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(constants.RedditConfig.ListingLimit))
	params.Set("depth", "100")
	params.Set("raw_json", "1")

	body, err := c.get(ctx, fmt.Sprintf("/comments/%s.json", threadID), params)
	if err != nil {
		c.logger.Error("Thread fetch failed, proceeding with empty corpus",
			zap.String("thread", threadID),
			zap.Error(err),
		)
		return thread, nil
	}

	var listings []listing
	if err := json.Unmarshal(body, &listings); err != nil {
		c.logger.Error("Thread response did not parse",
			zap.String("thread", threadID),
			zap.Error(err),
		)
		return thread, nil
	}
	if len(listings) < 2 {
		c.logger.Error("Thread response missing comment listing",
			zap.String("thread", threadID),
			zap.Int("listings", len(listings)),
		)
		return thread, nil
	}

	if len(listings[0].Data.Children) > 0 {
		var post postData
		if err := json.Unmarshal(listings[0].Data.Children[0].Data, &post); err == nil {
			thread.Title = post.Title
			thread.Score = post.Score
		}
	}

	seen := make(map[string]struct{})
	result := walkThings(listings[1].Data.Children)
	thread.Comments = appendUnique(thread.Comments, result.comments, seen)

	// Continuation ids get the same dedup treatment as comments: a batch can
	// hand back a "more" node pointing at ids already drained, and requeueing
	// those would never terminate.
	queued := make(map[string]struct{})
	pending := appendNewIDs(nil, result.more, queued)
	for len(pending) > 0 {
		batch := pending
		if len(batch) > constants.RedditConfig.MoreBatchSize {
			batch = batch[:constants.RedditConfig.MoreBatchSize]
		}
		pending = pending[len(batch):]

		resolved := c.resolveMore(ctx, threadID, batch)
		thread.Comments = appendUnique(thread.Comments, resolved.comments, seen)
		pending = appendNewIDs(pending, resolved.more, queued)
	}

	c.logger.Info("Thread fetched",
		zap.String("thread", threadID),
		zap.String("title", thread.Title),
		zap.Int("comments", len(thread.Comments)),
	)

	c.cache.Set(ctx, cacheKey, thread, constants.CacheTTL.ThreadCorpus)

	return thread, nil
}

// resolveMore fetches one batch of continuation ids via /api/morechildren.
// A failed batch contributes nothing.
func (c *Client) resolveMore(ctx context.Context, threadID string, children []string) walkResult {
	params := url.Values{}
	params.Set("api_type", "json")
	params.Set("link_id", "t3_"+threadID)
	params.Set("children", strings.Join(children, ","))
	params.Set("raw_json", "1")

	body, err := c.get(ctx, "/api/morechildren.json", params)
	if err != nil {
		c.logger.Error("morechildren batch failed, skipping",
			zap.String("thread", threadID),
			zap.Int("batch_size", len(children)),
			zap.Error(err),
		)
		return walkResult{}
	}

	var resp moreChildrenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("morechildren response did not parse",
			zap.String("thread", threadID),
			zap.Error(err),
		)
		return walkResult{}
	}

	return walkThings(resp.JSON.Data.Things)
}

// walkThings walks a slice of things depth-first and returns what it found.
// Unavailable comments are dropped but their reply subtrees are still
// descended, since children of a deleted comment remain readable.
func walkThings(things []thing) walkResult {
	var result walkResult

	for _, th := range things {
		switch th.Kind {
		case "t1":
			var c commentData
			if err := json.Unmarshal(th.Data, &c); err != nil {
				continue
			}

			if c.Body != bodyDeleted && c.Body != bodyRemoved {
				result.comments = append(result.comments, domain.Comment{
					ID:    c.ID,
					Body:  c.Body,
					Score: c.Score,
				})
			}

			if c.Replies.Listing != nil {
				child := walkThings(c.Replies.Listing.Data.Children)
				result.comments = append(result.comments, child.comments...)
				result.more = append(result.more, child.more...)
			}

		case "more":
			var m moreData
			if err := json.Unmarshal(th.Data, &m); err != nil {
				continue
			}
			result.more = append(result.more, m.Children...)
		}
	}

	return result
}

// appendUnique adds comments not yet seen, preserving order. A comment can
// show up both in the direct listing and in a morechildren batch; it must be
// counted once.
func appendUnique(dst []domain.Comment, src []domain.Comment, seen map[string]struct{}) []domain.Comment {
	for _, c := range src {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		dst = append(dst, c)
	}
	return dst
}

// appendNewIDs queues continuation ids not yet requested, preserving order.
func appendNewIDs(dst []string, src []string, queued map[string]struct{}) []string {
	for _, id := range src {
		if _, dup := queued[id]; dup {
			continue
		}
		queued[id] = struct{}{}
		dst = append(dst, id)
	}
	return dst
}
