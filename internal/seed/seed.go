package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/config"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/publish"
	"github.com/resto-dev/resto-scheduler/backend/internal/repository"
	"github.com/resto-dev/resto-scheduler/backend/internal/utils"
)

// SeedUsers 插入 n 个随机员工账号，并为每人生成一周的可用时间
func SeedUsers(repo *repository.Repository, cfg *config.Config, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成随机用户", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("无法插入用户", slog.String("error", err.Error()))
			continue
		}

		for _, availability := range utils.GenerateRandomAvailability(user.ID) {
			if err := repo.UpsertAvailability(availability); err != nil {
				slog.Error("无法插入可用时间", slog.String("error", err.Error()))
			}
		}

		cnt++
	}

	slog.Info("插入用户成功", slog.Int("count", cnt))
}

// SeedSchedule 按员工的可用时间随机填满从本周一开始的 14 天排班，
// 并把上一个周期发布出去，方便演示快照和修订流程
func SeedSchedule(repo *repository.Repository) {
	users, err := repo.GetAllUsers()
	if err != nil {
		slog.Error("无法获取用户列表", slog.String("error", err.Error()))
		return
	}

	employees := make([]*domain.User, 0, len(users))
	managers := make([]*domain.User, 0)
	for _, user := range users {
		if !user.IsActive {
			continue
		}
		if user.IsManager() {
			managers = append(managers, user)
		} else {
			employees = append(employees, user)
		}
	}
	if len(employees) == 0 || len(managers) == 0 {
		slog.Error("员工或经理数量不足，请先插入用户")
		return
	}

	currentStart := utils.MondayOf(time.Now())
	previousStart := currentStart.AddDate(0, 0, -14)

	fillPeriod(repo, previousStart, employees, managers)
	fillPeriod(repo, currentStart, employees, managers)

	// 把上一个周期发布出去
	period, err := repo.EnsurePeriod(previousStart)
	if err != nil {
		slog.Error("无法创建上一个周期", slog.String("error", err.Error()))
		return
	}

	publisher := publish.NewPublisher(repo)
	if _, err := publisher.Post(period.StartDate, managers[0].ID); err != nil {
		slog.Error("无法发布上一个周期", slog.String("error", err.Error()))
		return
	}

	slog.Info("插入排班数据成功", slog.String("previousStart", previousStart.Format(utils.DateLayout)), slog.String("currentStart", currentStart.Format(utils.DateLayout)))
}

func fillPeriod(repo *repository.Repository, startDate time.Time, employees []*domain.User, managers []*domain.User) {
	for _, date := range utils.PeriodDates(startDate) {
		// 重复执行时先清空当天旧指派，保证结果可复现
		if err := repo.DeleteAssignmentsByDate(date); err != nil {
			slog.Error("无法清空当天指派", slog.String("error", err.Error()))
			continue
		}

		for _, rs := range domain.RoleSlots {
			// 留一些空格子，更接近真实班表
			if rand.Intn(10) == 0 {
				continue
			}

			var employeeID int64
			if rs.ManagerOnly {
				employeeID = managers[rand.Intn(len(managers))].ID
			} else {
				employeeID = employees[rand.Intn(len(employees))].ID
			}

			shift, err := repo.EnsureShift(date, rs.Period, rs.Position)
			if err != nil {
				slog.Error("无法创建排班格子", slog.String("error", err.Error()))
				continue
			}

			if _, err := repo.UpsertAssignment(shift.ID, employeeID); err != nil {
				slog.Error("无法插入指派", slog.String("error", err.Error()))
			}
		}
	}
}
