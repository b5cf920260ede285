package core

import "classroom-chat/biz/application/dto/basic"

type Response = basic.Response

type SignUpReq struct {
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
	Role     string `json:"role" vd:"$=='teacher'||$=='student'"`
	Username string `json:"username,omitempty"`
}

type SignUpResp struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"token"`
	Expire int64  `json:"expire"`
}

type SignInReq struct {
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

type SignInResp struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"token"`
	Expire int64  `json:"expire"`
}

type GetUserInfoReq struct {
}

type UserInfo struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
}

type GetUserInfoResp struct {
	User *UserInfo `json:"user"`
}
