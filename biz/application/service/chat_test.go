package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"classroom-chat/biz/application/dto/basic"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/room"
	"classroom-chat/biz/infrastructure/subscription"
	"classroom-chat/biz/infrastructure/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(rooms *fakeRoomStore, msgs *fakeMessageStore, relay *fakeRelay) *ChatService {
	return &ChatService{
		RoomMapper:    rooms,
		MessageMapper: msgs,
		Relay:         relay,
		Hub:           subscription.NewHub(),
		Locker:        newFakeLocker(),
	}
}

func classRoom() *room.Room {
	return &room.Room{JoinCode: "ABC123", TeacherID: "t1", RoomName: "语文课",
		Students: []room.Student{{ID: "s1", Name: "小明"}}}
}

func TestSendMessage(t *testing.T) {
	msgs := &fakeMessageStore{}
	relay := &fakeRelay{reply: "答案是42"}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, relay)

	resp, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "问题"})
	require.NoError(t, err)
	assert.Equal(t, "答案是42", resp.Reply)

	stored, _ := msgs.FindByConversation(ctxWithUser("s1"), "ABC123", "s1", nil)
	require.Len(t, stored, 2)
	assert.Equal(t, consts.SenderUser, stored[0].Sender)
	assert.Equal(t, "问题", stored[0].Text)
	assert.Equal(t, consts.SenderAI, stored[1].Sender)
	assert.Equal(t, "答案是42", stored[1].Text)
}

func TestSendMessageBlankNoop(t *testing.T) {
	msgs := &fakeMessageStore{}
	relay := &fakeRelay{reply: "不应被调用"}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, relay)

	resp, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "   \t\n "})
	require.NoError(t, err)
	assert.Empty(t, resp.Reply)

	stored, _ := msgs.FindByConversation(ctxWithUser("s1"), "ABC123", "s1", nil)
	assert.Empty(t, stored)
	assert.Zero(t, relay.calls)
}

func TestSendMessageRelayFailureKeepsUserMessage(t *testing.T) {
	msgs := &fakeMessageStore{}
	relay := &fakeRelay{err: consts.ErrRelay}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, relay)

	_, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "问题"})
	assert.ErrorIs(t, err, consts.ErrRelay)

	// 用户消息保留，AI消息不产生
	stored, _ := msgs.FindByConversation(ctxWithUser("s1"), "ABC123", "s1", nil)
	require.Len(t, stored, 1)
	assert.Equal(t, consts.SenderUser, stored[0].Sender)
}

func TestSendMessageNonMember(t *testing.T) {
	svc := newChatService(newFakeRoomStore(classRoom()), &fakeMessageStore{}, &fakeRelay{})

	_, err := svc.SendMessage(ctxWithUser("s9"), &core.SendMessageReq{JoinCode: "ABC123", Text: "问题"})
	assert.ErrorIs(t, err, consts.ErrNotRoomMember)
}

func TestSendMessageConcurrentLock(t *testing.T) {
	msgs := &fakeMessageStore{}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, &fakeRelay{reply: "好的"})

	// 模拟同一会话已有一条消息在途
	locker := svc.Locker.(*fakeLocker)
	release, err := locker.Acquire(ctxWithUser("s1"), "chat_send:ABC123:s1")
	require.NoError(t, err)
	defer release()

	_, err = svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "问题"})
	assert.ErrorIs(t, err, consts.ErrOneSend)
}

func TestGetMessagesOrderedAndScoped(t *testing.T) {
	msgs := &fakeMessageStore{}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, &fakeRelay{reply: "回复"})

	for _, text := range []string{"第一条", "第二条", "第三条"} {
		_, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: text})
		require.NoError(t, err)
	}

	resp, err := svc.GetMessages(ctxWithUser("s1"), &core.GetMessagesReq{JoinCode: "ABC123"})
	require.NoError(t, err)
	require.Equal(t, int64(6), resp.Total)
	assert.Equal(t, "第一条", resp.Messages[0].Text)
	assert.Equal(t, consts.SenderAI, resp.Messages[1].Sender)
	for i := 1; i < len(resp.Messages); i++ {
		assert.LessOrEqual(t, resp.Messages[i-1].Timestamp, resp.Messages[i].Timestamp)
	}
}

func TestGetMessagesPagination(t *testing.T) {
	msgs := &fakeMessageStore{}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, &fakeRelay{reply: "回复"})

	for _, text := range []string{"第一条", "第二条", "第三条"} {
		_, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: text})
		require.NoError(t, err)
	}

	page, limit := int64(2), int64(2)
	resp, err := svc.GetMessages(ctxWithUser("s1"), &core.GetMessagesReq{
		JoinCode:          "ABC123",
		PaginationOptions: &basic.PaginationOptions{Page: &page, Limit: &limit},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	assert.Equal(t, "第二条", resp.Messages[0].Text)
}

func TestGetMessagesTeacherView(t *testing.T) {
	msgs := &fakeMessageStore{}
	rooms := newFakeRoomStore(classRoom())
	svc := newChatService(rooms, msgs, &fakeRelay{reply: "回复"})

	_, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "提问"})
	require.NoError(t, err)

	// 教师查看学生会话
	sid := "s1"
	resp, err := svc.GetMessages(ctxWithUser("t1"), &core.GetMessagesReq{JoinCode: "ABC123", StudentId: &sid})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)

	// 学生不能查看他人会话
	_, err = svc.GetMessages(ctxWithUser("s2"), &core.GetMessagesReq{JoinCode: "ABC123", StudentId: &sid})
	assert.ErrorIs(t, err, consts.ErrNotTeacher)
}

func TestSubscribeMessagesSnapshots(t *testing.T) {
	msgs := &fakeMessageStore{}
	svc := newChatService(newFakeRoomStore(classRoom()), msgs, &fakeRelay{reply: "回复"})

	_, err := svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "第一条"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctxWithUser("s1"))
	resultChan := make(chan string, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.SubscribeMessages(ctx, &core.SubscribeMessagesReq{JoinCode: "ABC123"}, resultChan)
	}()

	// 初始快照
	initMsg := waitStream(t, resultChan)
	assert.Equal(t, util.STInit, initMsg.Type)

	// 追加后收到新快照
	_, err = svc.SendMessage(ctxWithUser("s1"), &core.SendMessageReq{JoinCode: "ABC123", Text: "第二条"})
	require.NoError(t, err)
	partMsg := waitStream(t, resultChan)
	assert.Equal(t, util.STPart, partMsg.Type)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("取消后订阅未退出")
	}
}

func TestSubscribeMessagesUnauthorized(t *testing.T) {
	svc := newChatService(newFakeRoomStore(classRoom()), &fakeMessageStore{}, &fakeRelay{})

	resultChan := make(chan string, 10)
	err := svc.SubscribeMessages(ctxWithUser("s9"), &core.SubscribeMessagesReq{JoinCode: "ABC123"}, resultChan)
	assert.ErrorIs(t, err, consts.ErrNotRoomMember)

	msg := waitStream(t, resultChan)
	assert.Equal(t, util.STError, msg.Type)
}

func waitStream(t *testing.T, ch <-chan string) util.StreamMessage {
	t.Helper()
	select {
	case raw := <-ch:
		var msg util.StreamMessage
		require.NoError(t, json.Unmarshal([]byte(raw), &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("等待流消息超时")
		return util.StreamMessage{}
	}
}
