package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterUsers(t *testing.T) {
	rows := [][]string{
		{"_id", "Email", "Networks", "Employer Name"},
		{"u1", "commuter@employer.org", "Atlanta", "Acme"},
		{"u2", "staff@rideamigos.com", "Atlanta", "Acme"},
		{"u3", "someone@employer.org", "RideAmigos Employees", "Acme"},
		{"u4", "someone@employer.org", "Atlanta", "RideAmigos"},
		{"u5", "support@gacommuteoptions.com", "Atlanta", "Acme"},
	}

	out := FilterUsers(rows)
	require.Len(t, out, 2, "header plus the one real commuter")
	assert.Equal(t, "u1", out[1][0])
}

func TestFilterUsersNoJunk(t *testing.T) {
	rows := [][]string{
		{"_id", "Email"},
		{"u1", "a@employer.org"},
		{"u2", "b@employer.org"},
	}

	out := FilterUsers(rows)
	assert.Len(t, out, 3)
}

func TestFilterUsersMissingFilterColumns(t *testing.T) {
	// Extracts without the filter columns pass through untouched.
	rows := [][]string{
		{"_id"},
		{"u1"},
	}

	out := FilterUsers(rows)
	assert.Len(t, out, 2)
}

func TestFilterUsersEmpty(t *testing.T) {
	assert.Empty(t, FilterUsers(nil))
}

func TestFilterTrips(t *testing.T) {
	rows := [][]string{
		{"User ID", "User Email", "User Name", "Networks"},
		{"u1", "commuter@employer.org", "Ada Lovelace", "Atlanta"},
		{"u2", "qa@test.com", "QA Tester", "Atlanta"},
		{"u3", "someone@employer.org", "Network Log", "Atlanta"},
		{"u4", "someone@employer.org", "Grace Hopper", "RideAmigos Test Network"},
	}

	out := FilterTrips(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "u1", out[1][0])
}

func TestJunkEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"staff@rideamigos.com", true},
		{"STAFF@RIDEAMIGOS.COM", true},
		{"someone@example.com", true},
		{"qa@test.com", true},
		{"support@gacommuteoptions.com", true},
		{"commuter@employer.org", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, junkEmail(tt.email), "junkEmail(%q)", tt.email)
	}
}
