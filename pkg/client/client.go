// Package client talks to the Daksh feed backend over JSON/HTTP.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// errorBody covers both echo's {"message"} and the feed's {"error"} shapes.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type Options struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

// API is a typed client for the backend endpoints the feed engine uses.
type API struct {
	http *resty.Client
	// token is sent only on backend calls, never to absolute URLs.
	token string
}

func New(opts Options) *API {
	var c *resty.Client
	if opts.HTTPClient != nil {
		c = resty.NewWithClient(opts.HTTPClient)
	} else {
		c = resty.New()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	c.SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &API{http: c, token: opts.Token}
}

func (a *API) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := a.http.R().SetContext(ctx).SetError(&errorBody{})
	if a.token != "" {
		req.SetAuthToken(a.token)
	}
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
		if eb, ok := resp.Error().(*errorBody); ok {
			if eb.Message != "" {
				apiErr.Message = eb.Message
			} else if eb.Error != "" {
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}
	return nil
}

// FeedPage fetches one page of posts.
func (a *API) FeedPage(ctx context.Context, page, limit int) (*FeedPage, error) {
	var out FeedPage
	err := a.do(ctx, http.MethodGet, "/api/posts", map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func highlightPath(postID, leaf string) string {
	return "/api/video-assignment/" + postID + "/" + leaf
}

// Comments lists the comments on a post, oldest first.
func (a *API) Comments(ctx context.Context, postID string) ([]Comment, error) {
	var out struct {
		Comments []Comment `json:"comments"`
	}
	err := a.do(ctx, http.MethodGet, highlightPath(postID, "highlight-stats"), map[string]string{"type": "comments"}, nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// CommentLikeStatuses returns like statuses for every comment on a post.
func (a *API) CommentLikeStatuses(ctx context.Context, postID, studentID string) (map[int64]LikeStatus, error) {
	var out struct {
		Statuses map[string]LikeStatus `json:"statuses"`
	}
	err := a.do(ctx, http.MethodGet, highlightPath(postID, "highlight-stats/comment-likes"), map[string]string{"studentId": studentID}, nil, &out)
	if err != nil {
		return nil, err
	}

	statuses := make(map[int64]LikeStatus, len(out.Statuses))
	for key, status := range out.Statuses {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		statuses[id] = status
	}
	return statuses, nil
}

// CreateComment posts the student's comment and returns it.
func (a *API) CreateComment(ctx context.Context, postID, studentID, text string) (*Comment, error) {
	var out struct {
		Comment Comment `json:"comment"`
	}
	body := map[string]any{"studentId": studentID, "comment": text}
	if err := a.do(ctx, http.MethodPost, highlightPath(postID, "highlight-stats"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func (a *API) LikeComment(ctx context.Context, postID string, commentID int64, studentID string) error {
	body := map[string]any{"commentId": commentID, "studentId": studentID}
	return a.do(ctx, http.MethodPost, highlightPath(postID, "highlight-stats/comment-like"), nil, body, nil)
}

func (a *API) UnlikeComment(ctx context.Context, postID string, commentID int64, studentID string) error {
	return a.do(ctx, http.MethodDelete, highlightPath(postID, "highlight-stats/comment-like"), map[string]string{
		"commentId": strconv.FormatInt(commentID, 10),
		"studentId": studentID,
	}, nil, nil)
}

func (a *API) LikePost(ctx context.Context, postID, studentID string) error {
	body := map[string]any{"studentId": studentID, "like": true}
	return a.do(ctx, http.MethodPost, highlightPath(postID, "highlight-stats"), nil, body, nil)
}

func (a *API) UnlikePost(ctx context.Context, postID, studentID string) error {
	return a.do(ctx, http.MethodDelete, highlightPath(postID, "highlight-stats"), map[string]string{"studentId": studentID}, nil, nil)
}

// SavePost and UnsavePost need a bearer token.
func (a *API) SavePost(ctx context.Context, postID string) error {
	return a.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/save", nil, nil, nil)
}

func (a *API) UnsavePost(ctx context.Context, postID string) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/posts/"+postID+"/save", nil, nil, nil)
}

func (a *API) Follow(ctx context.Context, followerID, followingID string) error {
	body := map[string]string{"followerId": followerID, "followingId": followingID}
	return a.do(ctx, http.MethodPost, "/api/follow", nil, body, nil)
}

func (a *API) Unfollow(ctx context.Context, followerID, followingID string) error {
	body := map[string]string{"followerId": followerID, "followingId": followingID}
	return a.do(ctx, http.MethodDelete, "/api/follow", nil, body, nil)
}

// FetchBytes downloads an absolute URL, e.g. an avatar image. The URL may
// point at a third-party host, so no credentials are attached.
func (a *API) FetchBytes(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := a.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", err
	}
	if resp.IsError() {
		return nil, "", &APIError{Status: resp.StatusCode(), Message: resp.Status()}
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
