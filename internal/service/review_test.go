package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/eventhub-server/internal/mocks"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/testutil"
)

func TestReview_Create_SetsReviewer(t *testing.T) {
	reviews := &servermocks.ReviewStore{}
	users := &servermocks.UserStore{}
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Name: "Ann"}, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.Reviewer == "Ann" && r.EventID == "ev1" && r.Rating == 4 && r.Title == "Great"
	})).Return(func(_ context.Context, r model.Review) model.Review { return r }, nil)

	s := NewReview(reviews, users, testutil.MakeNoopLogger())

	review, err := s.Create(context.Background(), userID, "ev1", model.ReviewParams{Title: " Great ", Body: "Loved it", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "Ann", review.Reviewer)
	reviews.AssertExpectations(t)
}

func TestReview_Create_Invalid(t *testing.T) {
	s := NewReview(&servermocks.ReviewStore{}, &servermocks.UserStore{}, testutil.MakeNoopLogger())

	cases := map[string]model.ReviewParams{
		"missing title": {Body: "b", Rating: 3},
		"missing body":  {Title: "t", Rating: 3},
		"rating low":    {Title: "t", Body: "b", Rating: 0},
		"rating high":   {Title: "t", Body: "b", Rating: 6},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(context.Background(), uuid.New(), "ev1", params)
			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestReview_List(t *testing.T) {
	reviews := &servermocks.ReviewStore{}
	reviews.On("GetByEventID", mock.Anything, "ev1").Return([]model.Review{{Title: "a"}, {Title: "b"}}, nil)
	reviews.On("GetByEventID", mock.Anything, "ev2").Return(nil, nil)

	s := NewReview(reviews, &servermocks.UserStore{}, testutil.MakeNoopLogger())

	got, err := s.List(context.Background(), "ev1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.List(context.Background(), "ev2")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
