package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowHandler(t *testing.T) {
	follows := newFakeFollows()
	e := newEcho()
	NewFollowHandler(follows).RegisterFollowRoutes(e.Group("/api", as(studentA)))

	body := `{"followerId":"` + studentA + `","followingId":"` + studentB + `"}`

	rec := serve(e, http.MethodPost, "/api/follow", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/follow", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Already following this user", decode(t, rec)["message"])

	rec = serve(e, http.MethodGet, "/api/follow/check?followerId="+studentA+"&followingId="+studentB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["isFollowing"])

	rec = serve(e, http.MethodDelete, "/api/follow", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/follow", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowHandler_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		viewer string
		body   string
		code   int
	}{
		{"missing ids", "", `{"followerId":"` + studentA + `"}`, http.StatusBadRequest},
		{"malformed id", "", `{"followerId":"abc","followingId":"` + studentB + `"}`, http.StatusBadRequest},
		{"self follow", "", `{"followerId":"` + studentA + `","followingId":"` + studentA + `"}`, http.StatusBadRequest},
		{"on behalf of someone else", studentB, `{"followerId":"` + studentA + `","followingId":"` + studentB + `"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			follows := newFakeFollows()
			e := newEcho()
			NewFollowHandler(follows).RegisterFollowRoutes(e.Group("/api", as(tt.viewer)))

			rec := serve(e, http.MethodPost, "/api/follow", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Empty(t, follows.rows)
		})
	}

	e := newEcho()
	NewFollowHandler(newFakeFollows()).RegisterFollowRoutes(e.Group("/api"))
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodGet, "/api/follow/check?followerId="+studentA, "").Code)
}
