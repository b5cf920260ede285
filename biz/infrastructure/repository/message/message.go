package message

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 某个(教室,学生)私有会话内的一条消息，只追加不修改
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JoinCode  string             `bson:"join_code" json:"joinCode"`
	StudentID string             `bson:"student_id" json:"studentId"`
	Text      string             `bson:"text" json:"text"`
	Sender    string             `bson:"sender" json:"sender"` // user/chatGPT
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
