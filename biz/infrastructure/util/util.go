package util

import (
	"classroom-chat/biz/application/dto/basic"
	"encoding/json"
)

// JSONF 序列化为json字符串，仅用于日志
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// Succeed 构造成功响应
func Succeed(msg string) (*basic.Response, error) {
	return &basic.Response{
		Code: 0,
		Msg:  msg,
	}, nil
}

// Fail 构造失败响应
func Fail(code int64, msg string) *basic.Response {
	return &basic.Response{
		Code: code,
		Msg:  msg,
	}
}
