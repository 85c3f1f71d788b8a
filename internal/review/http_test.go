// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/platform/ctxutil"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/review"
)

// newReviewRouter mounts the review routes under the same pattern the
// composition root uses, so {titleID} resolves exactly as in production.
func newReviewRouter(titleIDs ...int) http.Handler {
	service, _, _ := newTestService(titleIDs...)

	router := chi.NewRouter()
	router.Mount("/titles/{titleID}/reviews", review.NewHandler(service).Routes())
	return router
}

func doReviewRequest(router http.Handler, method, target, body string, caller review.Caller) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller.ID != "" {
		claims := &sec.AuthClaims{
			UserID:      caller.ID,
			Username:    caller.Username,
			Role:        string(caller.Role),
			IsSuperuser: caller.IsSuperuser,
		}
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCreateReview_ScoreBoundaries pins the 1..10 score window at the HTTP
layer: 0 and 11 must be rejected as validation failures before the service
runs, while both endpoints of the window are accepted.
*/
func TestCreateReview_ScoreBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		wantStatus int
	}{
		{name: "below_minimum", score: 0, wantStatus: http.StatusBadRequest},
		{name: "minimum", score: 1, wantStatus: http.StatusCreated},
		{name: "maximum", score: 10, wantStatus: http.StatusCreated},
		{name: "above_maximum", score: 11, wantStatus: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := newReviewRouter(1)

			body := fmt.Sprintf(`{"text":"solid entry","score":%d}`, test.score)
			recorder := doReviewRequest(router, http.MethodPost, "/titles/1/reviews/", body, author)

			require.Equal(t, test.wantStatus, recorder.Code)

			if test.wantStatus == http.StatusBadRequest {
				var envelope respond.ErrorEnvelope
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
				assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
				require.NotEmpty(t, envelope.Details)
				assert.Equal(t, review.FieldScore, envelope.Details[0].Field)
			}
		})
	}
}

/*
TestUpdateReview_ScoreBoundaries applies the same window to the partial
update path, where the score is optional but still bounded when present.
*/
func TestUpdateReview_ScoreBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		wantStatus int
	}{
		{name: "below_minimum", score: 0, wantStatus: http.StatusBadRequest},
		{name: "minimum", score: 1, wantStatus: http.StatusOK},
		{name: "maximum", score: 10, wantStatus: http.StatusOK},
		{name: "above_maximum", score: 11, wantStatus: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := newReviewRouter(1)

			recorder := doReviewRequest(router, http.MethodPost, "/titles/1/reviews/",
				`{"text":"solid entry","score":5}`, author)
			require.Equal(t, http.StatusCreated, recorder.Code)

			var created struct {
				Data struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

			body := fmt.Sprintf(`{"score":%d}`, test.score)
			target := fmt.Sprintf("/titles/1/reviews/%d", created.Data.ID)
			recorder = doReviewRequest(router, http.MethodPatch, target, body, author)

			assert.Equal(t, test.wantStatus, recorder.Code)
		})
	}
}
