package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrSignUp            = NewErrno(codes.Code(1001), errors.New("注册失败，请重试"))
	ErrSignIn            = NewErrno(codes.Code(1002), errors.New("登录失败，请先注册或重试"))
	ErrRepeatedSignUp    = NewErrno(codes.Code(1003), errors.New("该邮箱已注册"))
	ErrCreateRoom        = NewErrno(codes.Code(1004), errors.New("创建教室失败"))
	ErrGetRoomList       = NewErrno(codes.Code(1005), errors.New("获取教室列表失败"))
	ErrJoinRoom          = NewErrno(codes.Code(1006), errors.New("加入教室失败"))
	ErrRemoveStudent     = NewErrno(codes.Code(1007), errors.New("移除学生失败"))
	ErrDeleteRoom        = NewErrno(codes.Code(1008), errors.New("删除教室失败"))
	ErrSendMessage       = NewErrno(codes.Code(1009), errors.New("发送消息失败"))
	ErrGetMessages       = NewErrno(codes.Code(1010), errors.New("获取消息记录失败"))
	ErrUploadFile        = NewErrno(codes.Code(1011), errors.New("上传文件失败"))
	ErrGetFileList       = NewErrno(codes.Code(1012), errors.New("获取文件列表失败"))
	ErrDeleteFile        = NewErrno(codes.Code(1013), errors.New("删除文件失败"))
	ErrDownloadFile      = NewErrno(codes.Code(1014), errors.New("获取下载链接失败"))
	ErrNotRoomMember     = NewErrno(codes.Code(1015), errors.New("用户不是教室成员"))
	ErrNotTeacher        = NewErrno(codes.Code(1016), errors.New("仅教师可执行该操作"))
)

// 外部服务相关错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("参数错误"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("调用接口失败，请重试"))
	ErrRelay         = NewErrno(codes.Code(3001), errors.New("AI回复获取失败，请重试"))
	ErrTransport     = NewErrno(codes.Unavailable, errors.New("网络请求失败，请重试"))
	ErrOneSend       = NewErrno(codes.Code(3002), errors.New("上一条消息正在处理中，请等待回复后再发送"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrAlreadyExists   = NewErrno(codes.AlreadyExists, errors.New("该加入码已被占用"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("无效的id "))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("更新失败"))
)
