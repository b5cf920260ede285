package basic

// UserMeta 请求主体信息，由网关JWT解出
type UserMeta struct {
	UserId          string `json:"userId"`
	AppId           int64  `json:"appId"`
	DeviceId        string `json:"deviceId"`
	SessionUserId   string `json:"sessionUserId"`
	SessionAppId    int64  `json:"sessionAppId"`
	SessionDeviceId string `json:"sessionDeviceId"`
}

func (m *UserMeta) GetUserId() string {
	if m == nil {
		return ""
	}
	return m.UserId
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty" query:"page"`
	Limit *int64 `json:"limit,omitempty" query:"limit"`
}

type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}
