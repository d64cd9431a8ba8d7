// Package comments is the state behind a post's comment overlay.
package comments

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/daksh-app/daksh/backend/pkg/client"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/daksh-app/daksh/backend/validators"
)

var (
	ErrInvalidViewer  = errors.New("comments: viewer id is not a valid student id")
	ErrEmptyComment   = errors.New("comments: comment is empty")
	ErrUnknownComment = errors.New("comments: no such comment")
	ErrClosed         = errors.New("comments: session closed")
)

// Messages shown to the viewer.
const (
	MsgInvalidViewer = "Invalid student ID. Please log in again to comment."
	MsgEmptyComment  = "Comment cannot be empty."
	MsgLoadFailed    = "Failed to load comments."
	MsgSendFailed    = "Failed to post comment."
	MsgLikeFailed    = "Failed to update like."
)

// API is the part of *client.API a session uses.
type API interface {
	Comments(ctx context.Context, postID string) ([]client.Comment, error)
	CommentLikeStatuses(ctx context.Context, postID, studentID string) (map[int64]client.LikeStatus, error)
	CreateComment(ctx context.Context, postID, studentID, text string) (*client.Comment, error)
	LikeComment(ctx context.Context, postID string, commentID int64, studentID string) error
	UnlikeComment(ctx context.Context, postID string, commentID int64, studentID string) error
}

var _ API = (*client.API)(nil)

type Session struct {
	api      API
	postID   string
	viewerID string
	log      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	comments []client.Comment
	errMsg   string
	closed   bool
	// likeSeq counts like toggles per comment so a stale failure does not
	// undo a newer toggle.
	likeSeq map[int64]int
}

// NewSession creates a session for one post as seen by viewerID.
func NewSession(api API, postID, viewerID string, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		api:      api,
		postID:   postID,
		viewerID: strings.TrimSpace(viewerID),
		log:      log.WithComponent("comments").With("post_id", postID),
		ctx:      ctx,
		cancel:   cancel,
		likeSeq:  make(map[int64]int),
	}
}

// callCtx is cancelled when either ctx or the session ends.
func (s *Session) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}

func (s *Session) viewerValid() bool {
	return validators.IsObjectID(s.viewerID)
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// Open loads the comments and their like statuses: two calls in total.
func (s *Session) Open(ctx context.Context) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	list, err := s.api.Comments(ctx, s.postID)
	if err != nil {
		s.log.Warn("failed to load comments", "error", err)
		s.setError(MsgLoadFailed)
		return err
	}

	viewer := ""
	if s.viewerValid() {
		viewer = s.viewerID
	}
	statuses, err := s.api.CommentLikeStatuses(ctx, s.postID, viewer)
	if err != nil {
		// Comments stay usable without like counts.
		s.log.Warn("failed to load comment likes", "error", err)
		statuses = nil
	}

	for i := range list {
		st := statuses[list[i].ID]
		list[i].Likes = st.Count
		list[i].Liked = st.Liked
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.comments = list
	s.errMsg = ""
	return nil
}

// Send posts a comment and puts it at the head of the list.
func (s *Session) Send(ctx context.Context, text string) (*client.Comment, error) {
	if !s.viewerValid() {
		s.setError(MsgInvalidViewer)
		return nil, ErrInvalidViewer
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.setError(MsgEmptyComment)
		return nil, ErrEmptyComment
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	created, err := s.api.CreateComment(ctx, s.postID, s.viewerID, text)
	if err != nil {
		s.log.Warn("failed to post comment", "error", err)
		s.setError(MsgSendFailed)
		return nil, err
	}

	c := *created
	c.Likes = 0
	c.Liked = false

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	// One comment per student per post: an edit comes back with the same id.
	kept := make([]client.Comment, 0, len(s.comments)+1)
	kept = append(kept, c)
	for _, existing := range s.comments {
		if existing.ID != c.ID {
			kept = append(kept, existing)
		}
	}
	s.comments = kept
	s.errMsg = ""
	return &c, nil
}

// ToggleLike flips the viewer's like on a comment right away and persists
// it; a failed call restores the previous state.
func (s *Session) ToggleLike(ctx context.Context, commentID int64) error {
	if !s.viewerValid() {
		s.setError(MsgInvalidViewer)
		return ErrInvalidViewer
	}

	s.mu.Lock()
	idx := s.indexOf(commentID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownComment
	}
	prev := s.comments[idx]
	like := !prev.Liked
	s.comments[idx].Liked = like
	if like {
		s.comments[idx].Likes++
	} else if s.comments[idx].Likes > 0 {
		s.comments[idx].Likes--
	}
	s.likeSeq[commentID]++
	seq := s.likeSeq[commentID]
	s.mu.Unlock()

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	var err error
	if like {
		err = s.api.LikeComment(ctx, s.postID, commentID, s.viewerID)
	} else {
		err = s.api.UnlikeComment(ctx, s.postID, commentID, s.viewerID)
	}
	if err == nil {
		return nil
	}

	s.log.Warn("comment like failed", "comment_id", commentID, "like", like, "error", err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return err
	}
	if s.likeSeq[commentID] == seq {
		if i := s.indexOf(commentID); i >= 0 {
			s.comments[i].Liked = prev.Liked
			s.comments[i].Likes = prev.Likes
		}
	}
	s.errMsg = MsgLikeFailed
	return err
}

// indexOf finds a comment. Caller holds mu.
func (s *Session) indexOf(id int64) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) Comments() []client.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Comment(nil), s.comments...)
}

// Error is the message to show the viewer, "" when there is none.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Close cancels in-flight calls; their results are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
