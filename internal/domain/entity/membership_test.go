package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberRoleCapabilities(t *testing.T) {
	tests := []struct {
		role       MemberRole
		canRead    bool
		canWrite   bool
		canApprove bool
		canManage  bool
	}{
		{role: MemberRoleOwner, canRead: true, canWrite: true, canApprove: false, canManage: true},
		{role: MemberRoleEditor, canRead: true, canWrite: true, canApprove: false, canManage: false},
		{role: MemberRoleClient, canRead: true, canWrite: false, canApprove: true, canManage: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.canRead, tt.role.CanRead())
			assert.Equal(t, tt.canWrite, tt.role.CanWrite())
			assert.Equal(t, tt.canApprove, tt.role.CanApprove())
			assert.Equal(t, tt.canManage, tt.role.CanManage())
		})
	}
}

func TestMemberRoleIsValid(t *testing.T) {
	assert.True(t, MemberRoleOwner.IsValid())
	assert.True(t, MemberRoleEditor.IsValid())
	assert.True(t, MemberRoleClient.IsValid())
	assert.False(t, MemberRole("admin").IsValid())
	assert.False(t, MemberRole("").IsValid())
}
