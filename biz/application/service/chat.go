package service

import (
	"context"
	"fmt"
	"strings"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/message"
	"classroom-chat/biz/infrastructure/subscription"
	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IChatService interface {
	SendMessage(ctx context.Context, req *core.SendMessageReq) (*core.SendMessageResp, error)
	GetMessages(ctx context.Context, req *core.GetMessagesReq) (*core.GetMessagesResp, error)
	SubscribeMessages(ctx context.Context, req *core.SubscribeMessagesReq, resultChan chan<- string) error
}

type ChatService struct {
	RoomMapper    RoomStore
	MessageMapper MessageStore
	Relay         ReplyClient
	Hub           *subscription.Hub
	Locker        SendLocker
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

// SendMessage 发送一条消息并获取AI回复
// 用户消息、AI调用、AI消息三步不构成事务: AI调用失败时用户消息保留，
// 失败以可恢复错误返回调用方，不做自动重试
func (s *ChatService) SendMessage(ctx context.Context, req *core.SendMessageReq) (*core.SendMessageResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	studentID := meta.GetUserId()

	// 空白消息不入库也不报错
	if strings.TrimSpace(req.Text) == "" {
		return &core.SendMessageResp{}, nil
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, req.JoinCode)
	if err != nil {
		log.Error("教室不存在: %v", err)
		return nil, consts.ErrNotFound
	}
	if !r.HasStudent(studentID) {
		return nil, consts.ErrNotRoomMember
	}

	// 同一会话同一时刻只允许一条消息在途
	release, err := s.Locker.Acquire(ctx, fmt.Sprintf("chat_send:%s:%s", req.JoinCode, studentID))
	if err != nil {
		return nil, consts.ErrOneSend
	}
	defer release()

	userMsg := &message.Message{
		JoinCode:  req.JoinCode,
		StudentID: studentID,
		Text:      req.Text,
		Sender:    consts.SenderUser,
	}
	if err := s.MessageMapper.Insert(ctx, userMsg); err != nil {
		log.Error("用户消息写入失败: %v", err)
		return nil, consts.ErrSendMessage
	}
	s.publishSnapshot(ctx, req.JoinCode, studentID)

	reply, err := s.Relay.GetReply(ctx, req.Text)
	if err != nil {
		// 用户消息已持久化，部分失败状态对调用方可见
		log.Error("获取AI回复失败: %v", err)
		return nil, err
	}

	aiMsg := &message.Message{
		JoinCode:  req.JoinCode,
		StudentID: studentID,
		Text:      reply,
		Sender:    consts.SenderAI,
	}
	if err := s.MessageMapper.Insert(ctx, aiMsg); err != nil {
		log.Error("AI消息写入失败: %v", err)
		return nil, consts.ErrSendMessage
	}
	s.publishSnapshot(ctx, req.JoinCode, studentID)

	return &core.SendMessageResp{Reply: reply}, nil
}

// GetMessages 获取会话消息记录，按时间升序
// 学生只能查看自己的会话，教师可查看所辖教室任意学生的会话
func (s *ChatService) GetMessages(ctx context.Context, req *core.GetMessagesReq) (*core.GetMessagesResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	studentID, err := s.resolveConversation(ctx, meta.GetUserId(), req.JoinCode, req.StudentId)
	if err != nil {
		return nil, err
	}

	msgs, err := s.MessageMapper.FindByConversation(ctx, req.JoinCode, studentID, req.PaginationOptions)
	if err != nil {
		log.Error("获取消息记录失败: %v", err)
		return nil, consts.ErrGetMessages
	}

	infos, err := toMessageInfos(msgs)
	if err != nil {
		return nil, err
	}
	return &core.GetMessagesResp{
		Messages: infos,
		Total:    int64(len(infos)),
	}, nil
}

// SubscribeMessages 订阅会话消息
// 建立后先推送一次全量快照，之后每次追加都推送最新全量快照，
// 直到请求取消或订阅句柄被关闭
func (s *ChatService) SubscribeMessages(ctx context.Context, req *core.SubscribeMessagesReq, resultChan chan<- string) error {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		util.SendStreamMessage(resultChan, util.STError, "用户未认证", nil)
		return consts.ErrNotAuthentication
	}

	studentID, err := s.resolveConversation(ctx, meta.GetUserId(), req.JoinCode, req.StudentId)
	if err != nil {
		util.SendStreamMessage(resultChan, util.STError, "无权订阅该会话", nil)
		return err
	}

	sub := s.Hub.Subscribe(req.JoinCode, studentID)
	defer sub.Close()

	// 初始快照
	msgs, err := s.MessageMapper.FindByConversation(ctx, req.JoinCode, studentID, nil)
	if err != nil {
		util.SendStreamMessage(resultChan, util.STError, "获取消息记录失败", nil)
		return consts.ErrGetMessages
	}
	infos, err := toMessageInfos(msgs)
	if err != nil {
		return err
	}
	util.SendStreamMessage(resultChan, util.STInit, "", infos)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-sub.C():
			if !ok {
				return nil
			}
			infos, err := toMessageInfos(snapshot)
			if err != nil {
				continue
			}
			util.SendStreamMessage(resultChan, util.STPart, "", infos)
		}
	}
}

// resolveConversation 确定目标会话的学生并校验访问权限
func (s *ChatService) resolveConversation(ctx context.Context, actorID, joinCode string, studentId *string) (string, error) {
	r, err := s.RoomMapper.FindOneByJoinCode(ctx, joinCode)
	if err != nil {
		return "", consts.ErrNotFound
	}

	target := actorID
	if studentId != nil && *studentId != "" {
		target = *studentId
	}
	if target == actorID {
		if r.TeacherID != actorID && !r.HasStudent(actorID) {
			return "", consts.ErrNotRoomMember
		}
		return target, nil
	}
	// 查看他人会话仅限教室的创建教师
	if r.TeacherID != actorID {
		return "", consts.ErrNotTeacher
	}
	return target, nil
}

// publishSnapshot 追加消息后向订阅者推送最新全量快照
func (s *ChatService) publishSnapshot(ctx context.Context, joinCode, studentID string) {
	msgs, err := s.MessageMapper.FindByConversation(ctx, joinCode, studentID, nil)
	if err != nil {
		log.Error("快照查询失败: %v", err)
		return
	}
	s.Hub.Publish(joinCode, studentID, msgs)
}

// toMessageInfos 模型转响应格式
func toMessageInfos(msgs []*message.Message) ([]*core.MessageInfo, error) {
	infos := make([]*core.MessageInfo, 0, len(msgs))
	for _, val := range msgs {
		info := &core.MessageInfo{}
		if err := copier.Copy(info, val); err != nil {
			return nil, err
		}
		info.Id = val.ID.Hex()
		info.Timestamp = val.Timestamp.UnixMilli()
		infos = append(infos, info)
	}
	return infos, nil
}
