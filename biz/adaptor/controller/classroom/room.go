package classroom

import (
	"context"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CreateRoom 创建教室
func CreateRoom(ctx context.Context, c *app.RequestContext) {
	var req core.CreateRoomReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.CreateRoom(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// JoinRoom 加入教室
func JoinRoom(ctx context.Context, c *app.RequestContext) {
	var req core.JoinRoomReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.JoinRoom(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListRooms 获取教室列表
func ListRooms(ctx context.Context, c *app.RequestContext) {
	var req core.ListRoomsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.ListRooms(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetRoomDetails 获取教室详情
func GetRoomDetails(ctx context.Context, c *app.RequestContext) {
	var req core.GetRoomDetailsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.GetRoomDetails(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// RemoveStudent 将学生移出教室
func RemoveStudent(ctx context.Context, c *app.RequestContext) {
	var req core.RemoveStudentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.RemoveStudent(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteRoom 删除教室
func DeleteRoom(ctx context.Context, c *app.RequestContext) {
	var req core.DeleteRoomReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.RoomService.DeleteRoom(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
