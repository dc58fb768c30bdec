package domain

import "time"

type ShiftPeriod string

const (
	PeriodLunch  ShiftPeriod = "LUNCH"
	PeriodDinner ShiftPeriod = "DINNER"
)

type Position string

const (
	PositionLunchServer    Position = "LUNCH_SERVER"
	PositionLunchAssistant Position = "LUNCH_ASSISTANT"
	PositionLunchManager   Position = "LUNCH_MANAGER"
	PositionServer1        Position = "SERVER_1"
	PositionServer2        Position = "SERVER_2"
	PositionServer3        Position = "SERVER_3"
	PositionSushi          Position = "SUSHI"
	PositionExpo           Position = "EXPO"
	PositionBusser1        Position = "BUSSER_1"
	PositionBusser2        Position = "BUSSER_2"
	PositionHost1          Position = "HOST_1"
	PositionHost2          Position = "HOST_2"
	PositionFloat          Position = "FLOAT"
)

// Shift 是排班格子的自然键：日期 + 时段 + 岗位，一个格子至多一条 Assignment
type Shift struct {
	ID       int64       `json:"id"`
	Date     time.Time   `json:"date"`
	Period   ShiftPeriod `json:"period"`
	Position Position    `json:"position"`
}

// RoleSlot 把前端的 roleKey 和 (时段, 岗位) 的对应关系收敛成一张封闭的表，
// 新增岗位时只需要在这张表里加一行
type RoleSlot struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Period      ShiftPeriod `json:"period"`
	Position    Position    `json:"position"`
	ManagerOnly bool        `json:"managerOnly"`
}

var RoleSlots = []RoleSlot{
	{Key: "role_LUNCH_SERVER", Label: "Server", Period: PeriodLunch, Position: PositionLunchServer},
	{Key: "role_LUNCH_ASSISTANT", Label: "Assistant", Period: PeriodLunch, Position: PositionLunchAssistant},
	{Key: "role_LUNCH_MANAGER", Label: "Manager", Period: PeriodLunch, Position: PositionLunchManager, ManagerOnly: true},
	{Key: "role_DINNER_SERVER_1", Label: "Server 1", Period: PeriodDinner, Position: PositionServer1},
	{Key: "role_DINNER_SERVER_2", Label: "Server 2", Period: PeriodDinner, Position: PositionServer2},
	{Key: "role_DINNER_SERVER_3", Label: "Server 3", Period: PeriodDinner, Position: PositionServer3},
	{Key: "role_DINNER_SUSHI", Label: "Sushi", Period: PeriodDinner, Position: PositionSushi},
	{Key: "role_DINNER_EXPO", Label: "Expo", Period: PeriodDinner, Position: PositionExpo},
	{Key: "role_DINNER_BUSSER_1", Label: "Busser 1", Period: PeriodDinner, Position: PositionBusser1},
	{Key: "role_DINNER_BUSSER_2", Label: "Busser 2", Period: PeriodDinner, Position: PositionBusser2},
	{Key: "role_DINNER_HOST_1", Label: "Host 1", Period: PeriodDinner, Position: PositionHost1},
	{Key: "role_DINNER_HOST_2", Label: "Host 2", Period: PeriodDinner, Position: PositionHost2},
	{Key: "role_DINNER_FLOAT", Label: "FLOAT", Period: PeriodDinner, Position: PositionFloat},
}

func RoleSlotByKey(key string) (RoleSlot, bool) {
	for _, rs := range RoleSlots {
		if rs.Key == key {
			return rs, true
		}
	}
	return RoleSlot{}, false
}

func RoleSlotFor(period ShiftPeriod, position Position) (RoleSlot, bool) {
	for _, rs := range RoleSlots {
		if rs.Period == period && rs.Position == position {
			return rs, true
		}
	}
	return RoleSlot{}, false
}
