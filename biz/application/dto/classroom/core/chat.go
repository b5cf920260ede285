package core

import "classroom-chat/biz/application/dto/basic"

type MessageInfo struct {
	Id        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"` // user/chatGPT
	Timestamp int64  `json:"timestamp"`
}

type SendMessageReq struct {
	JoinCode string `json:"joinCode" vd:"len($)>0"`
	Text     string `json:"text"`
}

type SendMessageResp struct {
	Reply string `json:"reply"`
}

type GetMessagesReq struct {
	JoinCode string `json:"joinCode" query:"joinCode" vd:"len($)>0"`
	// StudentId 仅教师端查看学生会话时传入，学生端默认取自己
	StudentId *string `json:"studentId,omitempty" query:"studentId"`
	// PaginationOptions 不传时返回全量消息记录
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions,omitempty"`
}

type GetMessagesResp struct {
	Messages []*MessageInfo `json:"messages"`
	Total    int64          `json:"total"`
}

type SubscribeMessagesReq struct {
	JoinCode  string  `json:"joinCode" query:"joinCode" vd:"len($)>0"`
	StudentId *string `json:"studentId,omitempty" query:"studentId"`
}
