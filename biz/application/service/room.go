package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/room"
	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type IRoomService interface {
	CreateRoom(ctx context.Context, req *core.CreateRoomReq) (*core.CreateRoomResp, error)
	JoinRoom(ctx context.Context, req *core.JoinRoomReq) (*core.JoinRoomResp, error)
	ListRooms(ctx context.Context, req *core.ListRoomsReq) (*core.ListRoomsResp, error)
	GetRoomDetails(ctx context.Context, req *core.GetRoomDetailsReq) (*core.GetRoomDetailsResp, error)
	RemoveStudent(ctx context.Context, req *core.RemoveStudentReq) (*core.Response, error)
	DeleteRoom(ctx context.Context, req *core.DeleteRoomReq) (*core.Response, error)
}

type RoomService struct {
	RoomMapper RoomStore
	UserMapper UserStore
}

var RoomServiceSet = wire.NewSet(
	wire.Struct(new(RoomService), "*"),
	wire.Bind(new(IRoomService), new(*RoomService)),
)

// CreateRoom 创建教室
// 加入码生成后不做预查重，并发撞码时本次创建失败，由调用方换码重试
func (s *RoomService) CreateRoom(ctx context.Context, req *core.CreateRoomReq) (*core.CreateRoomResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	u, err := s.UserMapper.FindOne(ctx, meta.GetUserId())
	if err != nil {
		log.Error("获取用户信息失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if u.Role != consts.RoleTeacher {
		return nil, consts.ErrNotTeacher
	}

	joinCode := generateJoinCode()
	if req.JoinCode != nil && *req.JoinCode != "" {
		joinCode = *req.JoinCode
	}

	// 加入码占用检查
	_, err = s.RoomMapper.FindOneByJoinCode(ctx, joinCode)
	if err == nil {
		return nil, consts.ErrAlreadyExists
	}
	if !errors.Is(err, consts.ErrNotFound) {
		log.Error("查询教室失败: %v", err)
		return nil, consts.ErrCreateRoom
	}

	r := &room.Room{
		JoinCode:     joinCode,
		TeacherID:    u.ID,
		TeacherEmail: u.Email,
		RoomName:     req.RoomName,
		CreatedAt:    time.Now().Format(time.RFC3339),
		Students:     []room.Student{},
	}
	if err := s.RoomMapper.Insert(ctx, r); err != nil {
		log.Error("创建教室失败: %v", err)
		return nil, consts.ErrCreateRoom
	}

	return &core.CreateRoomResp{
		JoinCode:  r.JoinCode,
		RoomName:  r.RoomName,
		CreatedAt: r.CreatedAt,
	}, nil
}

// JoinRoom 学生加入教室，重复加入不产生重复名册记录
func (s *RoomService) JoinRoom(ctx context.Context, req *core.JoinRoomReq) (*core.JoinRoomResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	u, err := s.UserMapper.FindOne(ctx, meta.GetUserId())
	if err != nil {
		log.Error("获取用户信息失败: %v", err)
		return nil, consts.ErrNotFound
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, req.JoinCode)
	if err != nil {
		log.Error("教室不存在: %v", err)
		return nil, consts.ErrNotFound
	}

	// 已在名册中则直接返回
	if r.HasStudent(u.ID) {
		return &core.JoinRoomResp{
			JoinCode: r.JoinCode,
			RoomName: r.RoomName,
		}, nil
	}

	name := req.Name
	if name == "" {
		name = u.Username
	}
	student := room.Student{
		ID:    u.ID,
		Name:  name,
		Email: u.Email,
	}
	if err := s.RoomMapper.AddStudent(ctx, req.JoinCode, student); err != nil {
		log.Error("加入教室失败: %v", err)
		return nil, consts.ErrJoinRoom
	}

	return &core.JoinRoomResp{
		JoinCode: r.JoinCode,
		RoomName: r.RoomName,
	}, nil
}

// ListRooms 获取教室列表
// 教师按teacher_id索引查询，学生全量扫描后按名册过滤
func (s *RoomService) ListRooms(ctx context.Context, req *core.ListRoomsReq) (*core.ListRoomsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	u, err := s.UserMapper.FindOne(ctx, meta.GetUserId())
	if err != nil {
		log.Error("获取用户信息失败: %v", err)
		return nil, consts.ErrNotFound
	}

	var rooms []*room.Room
	if u.Role == consts.RoleTeacher {
		rooms, err = s.RoomMapper.FindByTeacher(ctx, u.ID)
	} else {
		var all []*room.Room
		all, err = s.RoomMapper.FindAll(ctx)
		if err == nil {
			rooms = lo.Filter(all, func(r *room.Room, _ int) bool {
				return r.HasStudent(u.ID)
			})
		}
	}
	if err != nil {
		log.Error("获取教室列表失败: %v", err)
		return nil, consts.ErrGetRoomList
	}

	roomInfos := make([]*core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		info, err := toRoomInfo(r)
		if err != nil {
			return nil, err
		}
		roomInfos = append(roomInfos, info)
	}

	return &core.ListRoomsResp{
		Rooms: roomInfos,
		Total: int64(len(roomInfos)),
	}, nil
}

// GetRoomDetails 获取教室详情，仅教室成员可见
func (s *RoomService) GetRoomDetails(ctx context.Context, req *core.GetRoomDetailsReq) (*core.GetRoomDetailsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, req.JoinCode)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if r.TeacherID != meta.GetUserId() && !r.HasStudent(meta.GetUserId()) {
		return nil, consts.ErrNotRoomMember
	}

	info, err := toRoomInfo(r)
	if err != nil {
		return nil, err
	}
	return &core.GetRoomDetailsResp{Room: info}, nil
}

// RemoveStudent 将学生移出教室，学生不在名册时视为成功
func (s *RoomService) RemoveStudent(ctx context.Context, req *core.RemoveStudentReq) (*core.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, req.JoinCode)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if r.TeacherID != meta.GetUserId() {
		return nil, consts.ErrNotTeacher
	}

	if err := s.RoomMapper.RemoveStudent(ctx, req.JoinCode, req.StudentId); err != nil {
		log.Error("移除学生失败: %v", err)
		return nil, consts.ErrRemoveStudent
	}

	return util.Succeed("移除成功")
}

// DeleteRoom 删除教室
// 仅删除教室文档，学生会话消息与文件不做级联清理
func (s *RoomService) DeleteRoom(ctx context.Context, req *core.DeleteRoomReq) (*core.Response, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	r, err := s.RoomMapper.FindOneByJoinCode(ctx, req.JoinCode)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	if r.TeacherID != meta.GetUserId() {
		return nil, consts.ErrNotTeacher
	}

	if err := s.RoomMapper.Delete(ctx, req.JoinCode); err != nil {
		log.Error("删除教室失败: %v", err)
		return nil, consts.ErrDeleteRoom
	}

	return util.Succeed("删除成功")
}

// toRoomInfo 模型转响应格式
func toRoomInfo(r *room.Room) (*core.RoomInfo, error) {
	info := &core.RoomInfo{}
	if err := copier.Copy(info, r); err != nil {
		return nil, err
	}
	info.Id = r.JoinCode
	info.Students = lo.Map(r.Students, func(s room.Student, _ int) *core.StudentInfo {
		return &core.StudentInfo{Id: s.ID, Name: s.Name, Email: s.Email}
	})
	return info, nil
}

// generateJoinCode 生成6位大写字母数字加入码
func generateJoinCode() string {
	code := make([]byte, consts.JoinCodeLength)
	for i := range code {
		randomIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(consts.JoinCodeCharset))))
		code[i] = consts.JoinCodeCharset[randomIndex.Int64()]
	}
	return string(code)
}
