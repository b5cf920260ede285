package service

import (
	"context"
	"sync"
	"time"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/basic"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/message"
	"classroom-chat/biz/infrastructure/repository/room"
	"classroom-chat/biz/infrastructure/repository/user"
	page "classroom-chat/biz/infrastructure/util/page"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存版基础设施，行为对齐Mongo实现

func ctxWithUser(userID string) context.Context {
	return adaptor.InjectUserMeta(context.Background(), &basic.UserMeta{UserId: userID})
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserStore(users ...*user.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Insert(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) FindOne(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindOneByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, consts.ErrNotFound
}

type fakeRoomStore struct {
	mu    sync.Mutex
	rooms map[string]*room.Room
}

func newFakeRoomStore(rooms ...*room.Room) *fakeRoomStore {
	s := &fakeRoomStore{rooms: make(map[string]*room.Room)}
	for _, r := range rooms {
		s.rooms[r.JoinCode] = r
	}
	return s
}

func (s *fakeRoomStore) Insert(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.JoinCode] = r
	return nil
}

func (s *fakeRoomStore) FindOneByJoinCode(_ context.Context, joinCode string) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[joinCode]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return r, nil
}

func (s *fakeRoomStore) FindAll(_ context.Context) ([]*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*room.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeRoomStore) FindByTeacher(_ context.Context, teacherID string) ([]*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*room.Room
	for _, r := range s.rooms {
		if r.TeacherID == teacherID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRoomStore) AddStudent(_ context.Context, joinCode string, student room.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[joinCode]
	if !ok {
		return consts.ErrNotFound
	}
	// $addToSet语义
	for _, st := range r.Students {
		if st == student {
			return nil
		}
	}
	r.Students = append(r.Students, student)
	return nil
}

func (s *fakeRoomStore) RemoveStudent(_ context.Context, joinCode string, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[joinCode]
	if !ok {
		return consts.ErrNotFound
	}
	kept := r.Students[:0]
	for _, st := range r.Students {
		if st.ID != studentID {
			kept = append(kept, st)
		}
	}
	r.Students = kept
	return nil
}

func (s *fakeRoomStore) Delete(_ context.Context, joinCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, joinCode)
	return nil
}

type fakeMessageStore struct {
	mu   sync.Mutex
	msgs []*message.Message
}

func (s *fakeMessageStore) Insert(_ context.Context, msg *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.Timestamp = time.Now()
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *fakeMessageStore) FindByConversation(_ context.Context, joinCode, studentID string, popts *basic.PaginationOptions) ([]*message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*message.Message
	for _, m := range s.msgs {
		if m.JoinCode == joinCode && m.StudentID == studentID {
			out = append(out, m)
		}
	}
	if popts != nil {
		skip, limit := page.ParsePageOpt(popts)
		if skip >= int64(len(out)) {
			return nil, nil
		}
		out = out[skip:]
		if limit < int64(len(out)) {
			out = out[:limit]
		}
	}
	return out, nil
}

type fakePlatform struct {
	signUpResp map[string]interface{}
	signUpErr  error
	signInResp map[string]interface{}
	signInErr  error
}

func (p *fakePlatform) SignUp(_ context.Context, _, _ string) (map[string]interface{}, error) {
	return p.signUpResp, p.signUpErr
}

func (p *fakePlatform) SignIn(_ context.Context, _, _ string) (map[string]interface{}, error) {
	return p.signInResp, p.signInErr
}

// platformOK 中台成功响应，返回指定userId
func platformOK(userID string) map[string]interface{} {
	return map[string]interface{}{
		"code": float64(0),
		"msg":  "ok",
		"data": map[string]any{"userId": userID},
	}
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(claims map[string]any) (string, int64, error) {
	return "token-" + claims["userId"].(string), time.Now().Add(time.Hour).Unix(), nil
}

type fakeRelay struct {
	reply string
	err   error
	calls int
}

func (r *fakeRelay) GetReply(_ context.Context, _ string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

type fakeLocker struct {
	held map[string]bool
	mu   sync.Mutex
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, consts.ErrOneSend
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, nil
}
