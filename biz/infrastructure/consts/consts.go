package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID         = "_id"
	JoinCode   = "join_code"
	TeacherID  = "teacher_id"
	StudentID  = "student_id"
	Students   = "students"
	Timestamp  = "timestamp"
	CreateTime = "create_time"
)

// 角色
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// 消息发送方
const (
	SenderUser = "user"
	SenderAI   = "chatGPT"
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
)

// 默认值
const (
	AppId              = 17
	JoinCodeLength     = 6
	JoinCodeCharset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	StoragePathPrefix  = "classrooms"
	DefaultOpenaiModel = "gpt-4"
)
