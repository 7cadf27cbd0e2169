package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to AdStatus
		want     bool
	}{
		{AdStatusPending, AdStatusApproved, true},
		{AdStatusPending, AdStatusRejected, true},
		{AdStatusPending, AdStatusArchived, false},
		{AdStatusApproved, AdStatusArchived, true},
		{AdStatusApproved, AdStatusPending, false},
		{AdStatusRejected, AdStatusApproved, true},
		{AdStatusArchived, AdStatusApproved, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestParseAdStatus(t *testing.T) {
	s, ok := ParseAdStatus(" Approved ")
	assert.True(t, ok)
	assert.Equal(t, AdStatusApproved, s)

	_, ok = ParseAdStatus("deleted")
	assert.False(t, ok)
}

func TestCreateAdRequest_Validate(t *testing.T) {
	req := &CreateAdRequest{Title: "  Plumbing  ", PriceCents: 1500}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Plumbing", req.Title)

	assert.Error(t, (&CreateAdRequest{Title: " "}).Validate())
	assert.Error(t, (&CreateAdRequest{Title: strings.Repeat("x", 141)}).Validate())
	assert.Error(t, (&CreateAdRequest{Title: "ok", PriceCents: -1}).Validate())
}

func TestUpdateAdRequest_Validate(t *testing.T) {
	assert.Error(t, (&UpdateAdRequest{}).Validate())

	title := "  New title "
	req := &UpdateAdRequest{Title: &title}
	require.NoError(t, req.Validate())
	assert.Equal(t, "New title", *req.Title)

	neg := int64(-5)
	assert.Error(t, (&UpdateAdRequest{PriceCents: &neg}).Validate())
}

func TestReviewRequests_Validate(t *testing.T) {
	assert.NoError(t, (&ClientReviewRequest{AdID: "a", Rating: 5}).Validate())
	assert.Error(t, (&ClientReviewRequest{AdID: "", Rating: 5}).Validate())
	assert.Error(t, (&ClientReviewRequest{AdID: "a", Rating: 0}).Validate())
	assert.NoError(t, (&ProviderReviewRequest{ClientID: "c", Rating: 1}).Validate())
	assert.Error(t, (&ProviderReviewRequest{ClientID: "c", Rating: 6}).Validate())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@x.com", NormalizeEmail("  ANA@x.com "))
}
