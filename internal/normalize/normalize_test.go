package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Tomatoes ", "tomatoe"},
		{"tomatoe", "tomatoe"},
		{"Whole   Milk", "whole milk"},
		{"whole-milk", "wholemilk"},
		{"EGGS", "egg"},
		{"Basmati Rice (5kg)", "basmati rice 5kg"},
		{"", ""},
		{"   ", ""},
		{"grass", "grass"}, // double-s is not a plural
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"  Tomatoes ", "Whole   Milk!", "eggs", "Açaí Berries", "x"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "raw=%q", s)
	}
}

func TestFindBestMatch(t *testing.T) {
	assert.Equal(t, "tomato", FindBestMatch("tomatoe", []string{"tomato", "potato"}))
	assert.Equal(t, "", FindBestMatch("xyz123", []string{"tomato", "potato"}))
	assert.Equal(t, "", FindBestMatch("anything", nil))

	// exact normalized hit always wins
	assert.Equal(t, "Whole Milk", FindBestMatch("whole   milk", []string{"Skim Milk", "Whole Milk"}))
}

func TestFindBestMatchStableTieBreak(t *testing.T) {
	// "breed" and "bream" are both one edit from "bread" (similarity
	// 0.8); the earlier candidate wins regardless of order.
	assert.Equal(t, "breed", FindBestMatch("bread", []string{"breed", "bream"}))
	assert.Equal(t, "bream", FindBestMatch("bread", []string{"bream", "breed"}))
}

func TestCapitalizeDisplayName(t *testing.T) {
	assert.Equal(t, "Whole Milk", CapitalizeDisplayName("  whole   MILK "))
	assert.Equal(t, "Tomato", CapitalizeDisplayName("tomato"))
	assert.Equal(t, "", CapitalizeDisplayName("   "))
}
