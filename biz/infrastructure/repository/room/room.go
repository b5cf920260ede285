package room

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student 教室名册中的学生记录，按id去重
type Student struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

type Room struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JoinCode     string             `bson:"join_code" json:"joinCode"`
	TeacherID    string             `bson:"teacher_id" json:"teacherId"`
	TeacherEmail string             `bson:"teacher_email" json:"teacherEmail"`
	RoomName     string             `bson:"room_name" json:"roomName"`
	CreatedAt    string             `bson:"created_at" json:"createdAt"` // ISO-8601 字符串
	Students     []Student          `bson:"students" json:"students"`
	UpdateTime   time.Time          `bson:"update_time" json:"updateTime"`
}

// HasStudent 判断名册内是否已有该学生
func (r *Room) HasStudent(studentID string) bool {
	for _, s := range r.Students {
		if s.ID == studentID {
			return true
		}
	}
	return false
}
