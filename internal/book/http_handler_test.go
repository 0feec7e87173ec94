package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) (*http.ServeMux, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	mux := http.NewServeMux()
	NewHTTPHandler(NewService(mockRepo)).Register(mux)
	return mux, mockRepo
}

func serve(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHTTPHandler_GetByAuthor(t *testing.T) {
	t.Run("unknown author is an empty object", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByAuthor(gomock.Any(), "Nobody", ByRatingDesc).Return([]Book{}, nil)

		w := serve(mux, "/book/Nobody")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("titles keep service order and the first duplicate wins", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByAuthor(gomock.Any(), "Ann Lee", ByRatingDesc).Return([]Book{
			{ID: 1, Title: "Zebra", Author: "Ann Lee", Rating: 8},
			{ID: 2, Title: "Apple", Author: "Ann Lee", Rating: 5},
			{ID: 3, Title: "Zebra", Author: "Ann Lee", Rating: 1},
		}, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		w := serve(mux, "/book/Ann%20Lee")

		require.Equal(t, http.StatusOK, w.Code)
		want := `{"Zebra":{"id":1,"title":"Zebra","author":"Ann Lee","date":"","views":"","likes":"","link":"","rating":9},` +
			`"Apple":{"id":2,"title":"Apple","author":"Ann Lee","date":"","views":"","likes":"","link":"","rating":6}}`
		assert.Equal(t, want+"\n", w.Body.String())
	})

	t.Run("storage failure", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByAuthor(gomock.Any(), "Ann", ByRatingDesc).Return(nil, context.DeadlineExceeded)

		w := serve(mux, "/book/Ann")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})
}

func TestHTTPHandler_GetByExactTitle(t *testing.T) {
	t.Run("routes title lookups past the author route", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByExactTitle(gomock.Any(), "Dune", ByRatingDesc).Return([]Book{{ID: 1, Title: "Dune", Rating: 1}}, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		w := serve(mux, "/book/title/Dune")

		require.Equal(t, http.StatusOK, w.Code)
		var got []Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, []Book{{ID: 1, Title: "Dune", Rating: 2}}, got)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByExactTitle(gomock.Any(), "Nothing", ByRatingDesc).Return(nil, nil)

		w := serve(mux, "/book/title/Nothing")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestHTTPHandler_SearchByTitle(t *testing.T) {
	t.Run("exact matches then keyword matches without dedup", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		gomock.InOrder(
			mockRepo.EXPECT().FindByExactTitle(gomock.Any(), "Java Programming", ByRatingDesc).
				Return([]Book{{ID: 1, Title: "Java Programming", Rating: 3}}, nil),
			mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
			mockRepo.EXPECT().FindByKeywords(gomock.Any(), []string{"Java", "Programming"}, ByRatingDesc).
				Return([]Book{
					{ID: 2, Title: "Go Programming", Rating: 9},
					{ID: 1, Title: "Java Programming", Rating: 4},
				}, nil),
			mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2),
		)

		w := serve(mux, "/books/Java%20Programming")

		require.Equal(t, http.StatusOK, w.Code)
		var got []Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Java Programming", "Go Programming", "Java Programming"}, titles(got))
		assert.Equal(t, []int{4, 10, 5}, ratings(got))
	})

	t.Run("keyword failure", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().FindByExactTitle(gomock.Any(), "x", ByRatingDesc).Return([]Book{}, nil)
		mockRepo.EXPECT().FindByKeywords(gomock.Any(), []string{"x"}, ByRatingDesc).Return(nil, context.Canceled)

		w := serve(mux, "/books/x")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
