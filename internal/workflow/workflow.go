package workflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/resto-dev/resto-scheduler/backend/internal/config"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/repository"
)

// Service 承载请假与换班申请的状态机，以及已发布周期的排班改动规则。
// 通知写数据库，邮件走消息队列，两者都不阻塞主流程
type Service struct {
	config      *config.Config
	repository  *repository.Repository
	mailChannel *amqp.Channel
}

func NewService(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel) *Service {
	return &Service{
		config:      cfg,
		repository:  repo,
		mailChannel: mailCh,
	}
}

// LockedPeriod 返回包含该日期的已发布周期，没有则返回 nil（表示未锁定）
func (s *Service) LockedPeriod(date time.Time) (*domain.SchedulePeriod, error) {
	period, err := s.repository.FindPostedContaining(date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return period, nil
}

// CreateAuto 根据申请人当天的排班自动决定申请类型：
// 当天没有排班时创建请假申请，有排班时创建换班申请（取第一条排班作为交换对象）
func (s *Service) CreateAuto(requester *domain.User, date time.Time, receiverUsername string) (*domain.Request, error) {
	assignments, err := s.repository.GetAssignmentsByEmployeeAndDate(requester.ID, date)
	if err != nil {
		return nil, err
	}

	if ClassifyAuto(assignments) == domain.RequestTimeOff {
		req := &domain.Request{
			Type:        domain.RequestTimeOff,
			Status:      domain.RequestPending,
			RequesterID: requester.ID,
			RequestDate: date,
		}
		if err := s.repository.CreateRequest(req); err != nil {
			return nil, err
		}

		s.notifyManagers(domain.NotificationReqCreated, requestEventPayload(req, requester.FullName))
		return req, nil
	}

	return s.createTrade(requester, assignments[0], receiverUsername)
}

// CreateTrade 针对指定时段发起换班申请
func (s *Service) CreateTrade(requester *domain.User, date time.Time, period domain.ShiftPeriod, receiverUsername string) (*domain.Request, error) {
	assignments, err := s.repository.GetAssignmentsByEmployeeAndDate(requester.ID, date)
	if err != nil {
		return nil, err
	}

	offer := MatchPeriod(assignments, period)
	if offer == nil {
		return nil, ErrNoMatchingAssignment
	}

	return s.createTrade(requester, offer, receiverUsername)
}

func (s *Service) createTrade(requester *domain.User, offer *domain.Assignment, receiverUsername string) (*domain.Request, error) {
	if receiverUsername == "" {
		return nil, ErrReceiverRequired
	}

	receiver, err := s.repository.GetUserByUsername(receiverUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	req := &domain.Request{
		Type:              domain.RequestTrade,
		Status:            domain.RequestPending,
		RequesterID:       requester.ID,
		RequestDate:       offer.Date,
		OfferAssignmentID: &offer.ID,
		ReceiverID:        &receiver.ID,
	}
	if err := s.repository.CreateRequest(req); err != nil {
		return nil, err
	}

	s.notify(receiver.ID, domain.NotificationTradeInvite, requestEventPayload(req, requester.FullName))
	s.notifyManagers(domain.NotificationReqCreated, requestEventPayload(req, requester.FullName))

	s.sendMail(domain.MailMessage{
		Type: "trade_invite",
		To:   receiver.Email,
		Data: domain.TradeInviteMailData{
			FullName:      receiver.FullName,
			RequesterName: requester.FullName,
			Date:          offer.Date.Format("2006-01-02"),
			RequestID:     req.ID,
		},
	})

	return req, nil
}

// Confirm 由被指定的接收人确认换班申请
func (s *Service) Confirm(requestID int64, receiver *domain.User) (*domain.Request, error) {
	req, err := s.repository.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	if err := CanConfirm(req, receiver.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	confirmed, err := s.repository.ConfirmTradeRequest(req.ID, receiver.ID, now)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, ErrRequestNotPending
	}

	req.ReceiverConfirmed = true
	req.ReceiverConfirmedAt = &now

	s.notifyManagers(domain.NotificationReqUpdated, requestEventPayload(req, receiver.FullName))
	return req, nil
}

// Approve 由经理批准申请。换班申请在接收人未确认时需要 override 才能批准，
// 批准的全部副作用（状态、改派、修订记录）在仓库层的一个事务里完成
func (s *Service) Approve(requestID int64, manager *domain.User, note string, override bool) (*domain.Request, error) {
	req, err := s.repository.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	if err := CanApprove(req, override); err != nil {
		return nil, err
	}

	now := time.Now()

	if req.Type == domain.RequestTimeOff {
		decided, err := s.repository.DecideRequest(req.ID, domain.RequestApproved, manager.ID, now, note)
		if err != nil {
			return nil, err
		}
		if !decided {
			return nil, ErrRequestNotPending
		}
	} else {
		assignment, err := s.repository.GetAssignmentByID(*req.OfferAssignmentID)
		if err != nil {
			return nil, err
		}

		// 指派对应的格子（日期、时段、岗位）不会变，周期可以在事务外查；
		// 是否需要修订记录、原员工是谁，由仓库层在事务内按当下的指派判断
		period, err := s.LockedPeriod(assignment.Date)
		if err != nil {
			return nil, err
		}

		decided, err := s.repository.ApproveTradeRequest(req.ID, manager.ID, now, note, assignment.ID, *req.ReceiverID, period)
		if err != nil {
			return nil, err
		}
		if !decided {
			return nil, ErrRequestNotPending
		}
	}

	req.Status = domain.RequestApproved
	req.DecidedByID = &manager.ID
	req.DecidedAt = &now
	req.Note = note

	s.notifyDecision(req)
	return req, nil
}

// Deny 由经理拒绝申请，不会改动任何排班
func (s *Service) Deny(requestID int64, manager *domain.User, note string) (*domain.Request, error) {
	req, err := s.repository.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != domain.RequestPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	decided, err := s.repository.DecideRequest(req.ID, domain.RequestDenied, manager.ID, now, note)
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, ErrRequestNotPending
	}

	req.Status = domain.RequestDenied
	req.DecidedByID = &manager.ID
	req.DecidedAt = &now
	req.Note = note

	s.notifyDecision(req)
	return req, nil
}

// DayEdit 描述某天一个岗位的改动，EmployeeID 为 nil 表示清空该岗位
type DayEdit struct {
	RoleKey    string
	EmployeeID *int64
}

// SaveDay 保存某天的排班改动。日期落在已发布周期内时需要 override，
// 且每个实际发生变化的格子都会写入修订记录；未变化的格子不产生任何写入
func (s *Service) SaveDay(editor *domain.User, date time.Time, edits []DayEdit, override bool) error {
	period, err := s.LockedPeriod(date)
	if err != nil {
		return err
	}
	if period != nil && !override {
		return ErrPeriodLocked
	}

	now := time.Now()

	for _, edit := range edits {
		slot, ok := domain.RoleSlotByKey(edit.RoleKey)
		if !ok {
			return ErrUnknownRoleSlot
		}

		if edit.EmployeeID != nil && slot.ManagerOnly {
			employee, err := s.repository.GetUserByID(*edit.EmployeeID)
			if err != nil {
				return err
			}
			if !employee.IsManager() {
				return ErrRoleConstraint
			}
		}

		shift, err := s.repository.EnsureShift(date, slot.Period, slot.Position)
		if err != nil {
			return err
		}

		var oldEmployeeID *int64
		existing, err := s.repository.GetAssignmentByShiftID(shift.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if existing != nil {
			oldEmployeeID = &existing.EmployeeID
		}

		if !EmployeeChanged(oldEmployeeID, edit.EmployeeID) {
			continue
		}

		// 指派改动和修订记录在同一个事务里落库，不会出现改了班却没有留痕的中间状态
		amendment := AmendmentForEdit(period, date, slot, oldEmployeeID, edit.EmployeeID, editor.ID, now)
		if err := s.repository.ApplyDayEdit(shift.ID, edit.EmployeeID, amendment); err != nil {
			return err
		}
	}

	return nil
}

type requestEvent struct {
	RequestID     int64                `json:"requestID"`
	Type          domain.RequestType   `json:"type"`
	Status        domain.RequestStatus `json:"status"`
	RequestDate   string               `json:"requestDate"`
	ActorFullName string               `json:"actorFullName"`
}

func requestEventPayload(req *domain.Request, actorFullName string) requestEvent {
	return requestEvent{
		RequestID:     req.ID,
		Type:          req.Type,
		Status:        req.Status,
		RequestDate:   req.RequestDate.Format("2006-01-02"),
		ActorFullName: actorFullName,
	}
}

func (s *Service) notify(recipientID int64, notificationType domain.NotificationType, payload requestEvent) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("序列化通知内容失败", "error", err.Error())
		return
	}

	notification := &domain.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Payload:     string(body),
	}
	if err := s.repository.CreateNotification(notification); err != nil {
		slog.Warn("写入通知失败", "recipient", recipientID, "error", err.Error())
	}
}

func (s *Service) notifyManagers(notificationType domain.NotificationType, payload requestEvent) {
	managers, err := s.repository.GetUsersByRole(domain.RoleManager)
	if err != nil {
		slog.Warn("查询经理列表失败", "error", err.Error())
		return
	}
	for _, manager := range managers {
		s.notify(manager.ID, notificationType, payload)
	}
}

func (s *Service) notifyDecision(req *domain.Request) {
	payload := requestEventPayload(req, "")

	s.notify(req.RequesterID, domain.NotificationTradeDecision, payload)
	if req.Type == domain.RequestTrade && req.ReceiverID != nil {
		s.notify(*req.ReceiverID, domain.NotificationTradeDecision, payload)
	}

	requester, err := s.repository.GetUserByID(req.RequesterID)
	if err != nil {
		slog.Warn("查询申请人失败", "requestID", req.ID, "error", err.Error())
		return
	}

	label := "请假申请"
	if req.Type == domain.RequestTrade {
		label = "换班申请"
	}
	decision := "已批准"
	if req.Status == domain.RequestDenied {
		decision = "已拒绝"
	}

	s.sendMail(domain.MailMessage{
		Type: "request_decision",
		To:   requester.Email,
		Data: domain.RequestDecisionMailData{
			FullName: requester.FullName,
			Label:    label,
			Decision: decision,
			Note:     req.Note,
		},
	})
}

// sendMail 把邮件推到消息队列，失败只记日志，不影响主流程
func (s *Service) sendMail(message domain.MailMessage) {
	body, err := json.Marshal(message)
	if err != nil {
		slog.Warn("序列化邮件失败", "error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := s.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Warn("邮件入队失败", "to", message.To, "error", err.Error())
	}
}
