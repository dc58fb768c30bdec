package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSlots_Complete(t *testing.T) {
	require.Len(t, RoleSlots, 13)

	seen := make(map[string]bool)
	for _, rs := range RoleSlots {
		assert.False(t, seen[rs.Key], "roleKey 重复: %s", rs.Key)
		seen[rs.Key] = true
	}
}

func TestRoleSlots_OnlyLunchManagerIsManagerOnly(t *testing.T) {
	for _, rs := range RoleSlots {
		if rs.Position == PositionLunchManager {
			assert.True(t, rs.ManagerOnly)
		} else {
			assert.False(t, rs.ManagerOnly, "岗位 %s 不应该限定经理", rs.Position)
		}
	}
}

func TestRoleSlotByKey(t *testing.T) {
	rs, ok := RoleSlotByKey("role_DINNER_SUSHI")
	require.True(t, ok)
	assert.Equal(t, PeriodDinner, rs.Period)
	assert.Equal(t, PositionSushi, rs.Position)

	_, ok = RoleSlotByKey("role_BREAKFAST_SERVER")
	assert.False(t, ok)
}

func TestRoleSlotFor(t *testing.T) {
	rs, ok := RoleSlotFor(PeriodLunch, PositionLunchManager)
	require.True(t, ok)
	assert.Equal(t, "role_LUNCH_MANAGER", rs.Key)
	assert.True(t, rs.ManagerOnly)

	// 午市没有晚市的岗位
	_, ok = RoleSlotFor(PeriodLunch, PositionExpo)
	assert.False(t, ok)
}
