package domain

import (
	"testing"
	"time"
)

func TestOtpChallenge_Expired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		challenge *OtpChallenge
		at        time.Time
		expected  bool
	}{
		{
			name: "fresh challenge is not expired",
			challenge: &OtpChallenge{
				Phone:     "+15550001234",
				Code:      "007421",
				CreatedAt: now,
				ExpiresAt: now.Add(2 * time.Minute),
			},
			at:       now,
			expected: false,
		},
		{
			name: "challenge past expiry",
			challenge: &OtpChallenge{
				Phone:     "+15550001234",
				Code:      "007421",
				CreatedAt: now.Add(-3 * time.Minute),
				ExpiresAt: now.Add(-1 * time.Minute),
			},
			at:       now,
			expected: true,
		},
		{
			name: "exactly at expiry is still live",
			challenge: &OtpChallenge{
				Phone:     "+15550001234",
				Code:      "007421",
				CreatedAt: now.Add(-2 * time.Minute),
				ExpiresAt: now,
			},
			at:       now,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.challenge.Expired(tt.at); got != tt.expected {
				t.Errorf("Expired(%v) = %v, want %v", tt.at, got, tt.expected)
			}
		})
	}
}
