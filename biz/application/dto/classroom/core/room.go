package core

type StudentInfo struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RoomInfo struct {
	Id           string         `json:"id"` // 即加入码
	JoinCode     string         `json:"joinCode"`
	RoomName     string         `json:"roomName"`
	TeacherId    string         `json:"teacherId"`
	TeacherEmail string         `json:"teacherEmail"`
	CreatedAt    string         `json:"createdAt"`
	Students     []*StudentInfo `json:"students"`
}

type CreateRoomReq struct {
	RoomName string  `json:"roomName" vd:"len($)>0"`
	JoinCode *string `json:"joinCode,omitempty"`
}

type CreateRoomResp struct {
	JoinCode  string `json:"joinCode"`
	RoomName  string `json:"roomName"`
	CreatedAt string `json:"createdAt"`
}

type JoinRoomReq struct {
	JoinCode string `json:"joinCode" vd:"len($)>0"`
	Name     string `json:"name,omitempty"`
}

type JoinRoomResp struct {
	JoinCode string `json:"joinCode"`
	RoomName string `json:"roomName"`
}

type ListRoomsReq struct {
}

type ListRoomsResp struct {
	Rooms []*RoomInfo `json:"rooms"`
	Total int64       `json:"total"`
}

type GetRoomDetailsReq struct {
	JoinCode string `json:"joinCode" query:"joinCode" vd:"len($)>0"`
}

type GetRoomDetailsResp struct {
	Room *RoomInfo `json:"room"`
}

type RemoveStudentReq struct {
	JoinCode  string `json:"joinCode" vd:"len($)>0"`
	StudentId string `json:"studentId" vd:"len($)>0"`
}

type DeleteRoomReq struct {
	JoinCode string `json:"joinCode" vd:"len($)>0"`
}
