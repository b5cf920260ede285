package core

type FileInfo struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Url        string `json:"url"`
	CreateTime int64  `json:"createTime"`
}

type ListFilesReq struct {
	JoinCode string `json:"joinCode" query:"joinCode" vd:"len($)>0"`
}

type ListFilesResp struct {
	Files []*FileInfo `json:"files"`
	Total int64       `json:"total"`
}

type UploadFileResp struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Url  string `json:"url"`
}

type DeleteFileReq struct {
	Path string `json:"path" vd:"len($)>0"`
}

type DownloadFileReq struct {
	Path string `json:"path" query:"path" vd:"len($)>0"`
}

type DownloadFileResp struct {
	Url string `json:"url"`
}
