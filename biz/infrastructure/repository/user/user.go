package user

import "time"

type User struct {
	// ID 使用身份平台分配的用户标识
	ID         string    `bson:"_id" json:"id"`
	Email      string    `bson:"email" json:"email"`
	Role       string    `bson:"role" json:"role"` // teacher/student
	Username   string    `bson:"username,omitempty" json:"username,omitempty"`
	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}
