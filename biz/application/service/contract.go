package service

import (
	"context"
	"io"
	"time"

	"classroom-chat/biz/application/dto/basic"
	"classroom-chat/biz/infrastructure/repository/file"
	"classroom-chat/biz/infrastructure/repository/message"
	"classroom-chat/biz/infrastructure/repository/room"
	"classroom-chat/biz/infrastructure/repository/user"
)

// 服务层对基础设施的依赖契约，便于在测试中替换实现

type UserStore interface {
	Insert(ctx context.Context, u *user.User) error
	FindOne(ctx context.Context, id string) (*user.User, error)
	FindOneByEmail(ctx context.Context, email string) (*user.User, error)
}

type RoomStore interface {
	Insert(ctx context.Context, r *room.Room) error
	FindOneByJoinCode(ctx context.Context, joinCode string) (*room.Room, error)
	FindAll(ctx context.Context) ([]*room.Room, error)
	FindByTeacher(ctx context.Context, teacherID string) ([]*room.Room, error)
	AddStudent(ctx context.Context, joinCode string, student room.Student) error
	RemoveStudent(ctx context.Context, joinCode string, studentID string) error
	Delete(ctx context.Context, joinCode string) error
}

type MessageStore interface {
	Insert(ctx context.Context, msg *message.Message) error
	FindByConversation(ctx context.Context, joinCode, studentID string, popts *basic.PaginationOptions) ([]*message.Message, error)
}

type FileStore interface {
	Insert(ctx context.Context, f *file.FileAsset) error
	FindByJoinCode(ctx context.Context, joinCode string) ([]*file.FileAsset, error)
	FindOneByPath(ctx context.Context, path string) (*file.FileAsset, error)
	DeleteByPath(ctx context.Context, path string) error
}

// ReplyClient AI回复外部接口，两种后端归一到单个字符串
type ReplyClient interface {
	GetReply(ctx context.Context, question string) (string, error)
}

// PlatformClient 外部身份平台，凭证的创建与校验都托管在平台侧
type PlatformClient interface {
	SignUp(ctx context.Context, email, password string) (map[string]interface{}, error)
	SignIn(ctx context.Context, email, password string) (map[string]interface{}, error)
}

// TokenIssuer 为登录主体签发访问令牌
type TokenIssuer interface {
	Issue(claims map[string]any) (token string, expire int64, err error)
}

// ObjectStorage 对象存储契约
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, onProgress func(percent int)) (string, error)
	Delete(ctx context.Context, key string) error
	PresignGet(key string, expire time.Duration) (string, error)
}

// SendLocker 每个(教室,学生)会话的发送互斥
type SendLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
