package query

import (
	"testing"

	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/stretchr/testify/assert"
)

var sampleRegistrations = []domain.Registration{
	{ID: "1", TeamName: "Rocket Science", Email: "rocket@example.com", ContactNo: "0300-1234567", Verified: domain.Verified},
	{ID: "2", TeamName: "Byte Club", Email: "bytes@uni.edu", ContactNo: "0311-7654321", Verified: domain.Unverified},
	{ID: "3", TeamName: "Null Pointers", Email: "np@example.com", ContactNo: "0321-0000000"},
}

func TestFilterRegistrations(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected []domain.ID
	}{
		{"empty term keeps all", "", []domain.ID{"1", "2", "3"}},
		{"team name, any case", "rocket", []domain.ID{"1"}},
		{"email", "UNI.EDU", []domain.ID{"2"}},
		{"contact number", "7654", []domain.ID{"2"}},
		{"shared domain", "example.com", []domain.ID{"1", "3"}},
		{"no match", "zzz", []domain.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRegistrations(sampleRegistrations, tt.term)
			ids := make([]domain.ID, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCountRegistrations(t *testing.T) {
	assert.Equal(t, RegistrationCounts{Total: 3, Verified: 1, Unverified: 2}, CountRegistrations(sampleRegistrations))
	assert.Equal(t, RegistrationCounts{}, CountRegistrations(nil))
}

func TestMembersOf(t *testing.T) {
	rocket := sampleRegistrations[0]
	members := []domain.TeamMember{
		{ID: "a", Name: "Ada", Registration: &domain.Registration{TeamName: "Rocket Science"}},
		{ID: "b", Name: "Bob", Registration: &domain.Registration{TeamName: "Byte Club"}},
		{ID: "c", Name: "Cy"},
	}

	got := MembersOf(members, rocket)
	assert.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Empty(t, MembersOf(members, domain.Registration{TeamName: "Nobody"}))
}
